package mcpserver

// ContentFormatContract describes the YAML block format of the site content
// so LLM consumers can propose edits that load cleanly.
const ContentFormatContract = `# Catenary Content Format

Site content lives in two YAML files: ` + "`whitepaper.yaml`" + ` and ` + "`landing.yaml`" + `.
A file that fails to parse or validate is rejected as a whole and the site keeps
serving the previous content.

## Whitepaper

` + "```" + `yaml
meta:
  title: "Catenary v0.1 Whitepaper | L3 Financial Infrastructure"  # REQUIRED, TechArticle headline
  description: ...                                                  # REQUIRED
  path: /whitepaper                                                 # REQUIRED
  type: article
  published: 2025-04-27T00:00:00Z                                   # REQUIRED
  author: {name: ..., url: ...}                                     # REQUIRED name
  publisher: {name: ..., logo: /images/...}                         # REQUIRED name
  keywords: [...]
title_block: {title: ..., author: ..., organization: ..., contact: ..., date: ...}
abstract: {title: Abstract, blocks: [...]}
heading: ...
sections:
  - title: 1 Introduction
    blocks: [...]
` + "```" + `

## Blocks

Each block is a mapping with exactly one kind key and an optional ` + "`class`" + `
that is appended to the default styling.

| Kind | Value |
|---|---|
| ` + "`h1` `h2` `h3`" + ` | inline text |
| ` + "`p`" + ` | inline text |
| ` + "`ul` `ol`" + ` | list of items; an item is inline text or ` + "`{text, blocks, tail}`" + ` |
| ` + "`math`" + ` | verbatim expression, rendered preformatted |
| ` + "`figure`" + ` | ` + "`{src, alt, caption}`" + `, all required |
| ` + "`table`" + ` | ` + "`{head: [...], rows: [[...]]}`" + `, every row as wide as the head |
| ` + "`hr`" + ` | any value |

Inline text supports ` + "`**strong**`" + `, ` + "`*emphasis*`" + ` and backtick code spans.
Other Markdown syntax is kept as literal text.

## Rules

1. **Figure sources** are site paths (` + "`/images/...`" + `) or absolute http(s) URLs.
   Relative paths get a leading slash. ` + "`..`" + ` segments and other schemes are rejected.
2. **Alt text and captions** are required on every figure.
3. **Section titles** carry their own numbering (` + "`3 Catenary Technical Architecture`" + `).
4. **Encoding** is UTF-8. Math uses Unicode symbols (×, Σ, ∫, ≥).
`
