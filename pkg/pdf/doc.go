// Package pdf implements the lexical and syntactic core of the PDF/PostScript
// object grammar described in the PDF Reference §3.2: a resumable byte
// tokenizer (Tokenizer) and a stack-based object assembler (StackParser)
// built on top of it. It turns a seekable byte stream into a stream of
// Objects — numbers, booleans, names, byte strings, arrays, dictionaries,
// and procedures — and stops there. Cross-reference tables, indirect object
// resolution, stream decoding, and content-stream interpretation are left to
// callers; this package only knows how to read what PDF Reference §3.2
// calls "objects".
package pdf
