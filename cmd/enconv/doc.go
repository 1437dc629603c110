// Command enconv detects text file encodings and rewrites files as UTF-8.
//
// Run `enconv --help` for the command list. The convert, scan, and check
// commands operate on files or directory trees; history inspects past
// runs; config manages the TOML configuration file.
package main
