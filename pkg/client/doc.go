/*
Package client implements the one-shot TCP call the CLI uses: connect,
write one command line, read one response line, close. There is no
connection reuse; every prompt line is its own connection.
*/
package client
