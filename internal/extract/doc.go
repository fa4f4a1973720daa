// Package extract recovers structured data from loosely formatted model
// completions: a bounded list of interview questions and a bounded feedback
// block. Both extractors are deterministic and never fail; an empty result
// means nothing usable was found.
package extract
