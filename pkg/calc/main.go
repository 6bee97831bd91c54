// Package calc provides the scanner, parser, expression tree and evaluator for a small
// arithmetic language of numeric literals, + - * /, unary minus, parentheses and
// bracketed sub-expressions, with statements ended by ";" or the keyword "evaluar".
//
// Pipeline: source → Scanner → tokens → Parser → tree → Evaluate → float64
package calc
