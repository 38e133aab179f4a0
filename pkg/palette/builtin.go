package palette

// Builtin returns the catalog used when no catalog file is given: a small
// set of rectangular rooms plus one corridor piece.
func Builtin() *Catalog {
	c, err := NewCatalog(
		Sized("hall", 2, 1),
		Sized("chamber", 1, 1),
		Sized("vault", 2, 2),
		Sized("corridor", 0, 3),
		Sized("cell", 0, 0),
	)
	if err != nil {
		panic(err)
	}
	return c
}
