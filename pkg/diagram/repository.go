package diagram

// Repository defines the interface for diagram persistence
type Repository interface {
	// Save persists a diagram to storage
	Save(root *Root) error

	// Load retrieves a diagram by ID
	Load(id ID) (*Root, error)

	// Exists reports whether a diagram with the given ID is stored
	Exists(id ID) (bool, error)

	// Delete removes a diagram from storage
	Delete(id ID) error

	// List returns all diagrams
	List() ([]*Root, error)
}
