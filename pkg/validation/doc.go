// Package validation checks user-provided names and paths before they reach
// the filesystem.
//
// # Path Validation
//
// Diagram IDs read from files or typed on the command line become file
// names in the diagram repository. PathValidator keeps every such name
// inside the repository directory:
//
//   - Lexical validation: rejects absolute paths and ".." components
//   - Symbolic link resolution: resolves symlinks to their real paths
//   - Containment verification: the final path must stay below the base
//
// Usage:
//
//	validator, err := validation.NewPathValidator("/home/ada/.nsflow/diagrams")
//	if err != nil {
//	    return err
//	}
//	path, err := validator.Validate(id + ".nsd.yaml")
//
// # Thread Safety
//
// All types in this package are safe for concurrent use by multiple goroutines.
package validation
