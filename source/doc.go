// Package source builds manpage parser trees from the places command-line
// interfaces are described: cobra command trees, pflag flag sets,
// description files, and Go packages that construct either of the first
// two.
package source
