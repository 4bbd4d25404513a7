// Package extraction turns free-form journal text into classified,
// reviewable suggestions.
//
// The pipeline is deterministic and rule based:
//
//  1. segmentation on sentence punctuation and line breaks
//  2. trigger detection against the goal, habit and task trigger tables
//  3. classification by weighted hit count (ties: goal > habit > quick action)
//  4. field extraction: title, category, frequency and due hints
//  5. de-duplication on normalised titles
//
// Trigger tables and the category vocabulary are plain data so the policy can
// be tested and swapped without touching the pipeline.
package extraction
