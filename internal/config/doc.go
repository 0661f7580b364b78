// Package config binds YAML files on disk to configuration trees.
//
// A Store owns one file path. Load decodes the file into a root node.Node,
// application code reads and writes through that node with dotted paths, and
// Save encodes the tree back and replaces the file atomically.
//
// # Basic Usage
//
//	st := config.New(filesys.OS(), "/etc/app/config.yaml", config.WithWriteDefaults(true))
//	if err := st.Load(); err != nil {
//		log.Fatal(err)
//	}
//	root := st.Root()
//	port := root.IntOr("server.port", 8080)
//	if _, err := st.SaveIfModified(); err != nil {
//		log.Fatal(err)
//	}
//
// # Missing and Default Files
//
// Loading a file that does not exist is not an error; the root is simply
// empty. CreateDefault writes a bundled default document to the path only
// when nothing is there yet, so user edits are never clobbered.
//
// # Live Reload
//
// Watch reloads the file whenever it is rewritten and hands the new root to
// a callback. Nodes taken from the old root keep pointing at the old
// document; callers should re-read through the new root. Loads counts the
// successful reads.
//
// # Settings
//
// The yamlnode CLI keeps its own settings in ~/.yamlnode/config.yaml and
// reads them through a write-defaults root, so a fresh install gets a fully
// populated settings file on first run:
//
//	# yamlnode settings
//	# - output.format: extended or compact
//	# - output.indent: spaces per level (2-9)
//	# - output.header: comment written above saved documents
//	# - defaults.write: persist values read with --default
//	output:
//	  format: extended
//	  indent: 2
//	  header: ""
//	defaults:
//	  write: false
//
// # Error Handling
//
//   - ErrInvalidConfig: a settings value cannot be used
//   - document.ErrDocumentFormat: the file is not valid YAML or its top
//     level is not a mapping (wrapped with the file path)
//
// # Thread Safety
//
// Root, Load and Save may be called from different goroutines. The nodes
// themselves are not synchronized; see package node.
package config
