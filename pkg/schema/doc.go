// Package schema defines the canonical model the extraction engine produces:
// field descriptors, resource groups, rule expression trees, repeaters, and
// the aggregate ExtractionResult. The types are plain data with JSON tags so
// results can be snapshotted and diffed directly.
package schema
