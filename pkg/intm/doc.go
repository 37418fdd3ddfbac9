// Package intm converts Microsoft Word documents (DOCX) into a simple,
// line-oriented intermediate markup.
//
// The intermediate markup keeps only document structure: paragraphs,
// paragraph styles, tables with row and column numbers, tabs and breaks.
// Downstream tools can consume it without understanding WordprocessingML.
//
// # Quick Start
//
// The simplest way to convert a file is the package-level function:
//
//	res, err := intm.ConvertFile("report.docx", "report.intm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Paragraphs, "paragraphs")
//
// For more control, build a Converter from a Config:
//
//	cfg, err := intm.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conv, err := intm.NewConverter(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := conv.ConvertFile(ctx, "report.docx", "report.intm")
//
// # Output Format
//
//	<p>                      - paragraph start (no close marker)
//	<div class='Heading1'/>  - paragraph style, unless ignored
//	<table>\n  </table>\n    - table
//	<tr row='N'>\n  </tr>\n  - row, N is 1-based
//	<tc col='N'>\n  </tc>\n  - cell, N is 1-based and span-adjusted
//	\t  \r                   - tab and carriage return, as two characters
//	<br/>                    - explicit break
//
// Text runs are copied verbatim; markup characters in document text are not
// escaped. A line terminator is written lazily, right before the next
// structural marker, so the output may end without one.
//
// # Conversion Model
//
// The Engine makes a single forward pass over tag events from the
// xml subpackage. Its only state is a pending line break flag and a stack of
// TablePosition values, one per open table. Any failure aborts the pass;
// output already written is kept.
//
// # Sources
//
// Packages are opened from the local filesystem or, when a Converter is
// given an ObjectAPI, from s3://bucket/key URIs.
//
// # Batches
//
// RunBatch converts the jobs of a Manifest concurrently. Each job has its own
// conversion state.
//
// # Configuration
//
// Configuration comes from DefaultConfig, an optional YAML file named by
// INTM_CONFIG and INTM_* environment variables:
//
//	INTM_LOG_LEVEL         debug, info, warn, error or off
//	INTM_IGNORED_STYLES    comma separated style names
//	INTM_DOCUMENT_PART     package member to convert
//	INTM_MAX_PACKAGE_SIZE  maximum package size in bytes
//	INTM_CONCURRENCY       parallel jobs in a batch
package intm
