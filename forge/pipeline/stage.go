package pipeline

// Stage is one named, fallible step of the generation sequence. Stages run in
// order against the shared Context; a returned error aborts the run.
type Stage struct {
	Name string
	Run  func(c *Context) error
}
