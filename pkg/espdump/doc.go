// Package espdump reads and writes binary payloads captured as ESP-IDF style
// hex dump log lines.
//
// # Line Format
//
// Each dump line follows this format:
//
//	D (tick) tag: 0xaddress   xx xx xx xx xx xx xx xx  xx xx xx xx xx xx xx xx  |ascii|
//
// # Fields
//
//   - D: Literal log level letter. Other levels are not dump lines.
//   - tick: Decimal sequence number (milliseconds since boot on the device).
//   - tag: Identifier made of word characters, followed by a colon.
//   - address: Hex address of the first byte on the line, with a 0x prefix.
//   - bytes: Two lowercase hex digits per byte, each followed by whitespace.
//     Nominally 16 bytes per line. The device inserts an extra space after
//     the eighth byte.
//   - |: Literal delimiter. Everything after it (the ASCII column) is ignored.
//
// # Examples
//
// Example 1: A full line
//
//	D (1) TAG: 0x00000010   48 65 6c 6c 6f 20 57 6f 72 6c 64 21 21 21 21 21 |
//
//   - Decodes to the 16 bytes "Hello World!!!!!"
//
// Example 2: A short final line
//
//	D (9) a_main: 0x3ffb4a40   ff fb 90                                          |...|
//
//   - Decodes to 3 bytes by default. In strict mode the line is skipped.
//
// Lines that do not match the format are skipped silently. They are not an
// error and are not counted.
package espdump
