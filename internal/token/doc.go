// Package token defines lexical token kinds and trivia for the host language
// subset pipebind understands.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span, except for
//     identifiers, whose Text is NFC-normalized.
//   - Module attributes are lexed as '@' (Kind: At) followed by Ident.
//   - Keyword-list keys ("name:") are a single KwKey token; Text excludes the colon.
//   - Whitespace, newlines and '#' comments are leading Trivia, never tokens.
package token
