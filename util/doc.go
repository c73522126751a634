/*
Package util provides general-purpose helpers shared by the client and the
command-line tools.
*/
package util
