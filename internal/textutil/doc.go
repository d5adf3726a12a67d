// Package textutil holds the small string transforms shared by the age and
// tone stages: whole-word phrase substitution and sentence punctuation rewrites.
package textutil
