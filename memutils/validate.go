package memutils

// Validatable is implemented by anything that can check its own bookkeeping for consistency,
// such as an allocator comparing its running statistics against its allocation table
type Validatable interface {
	Validate() error
}
