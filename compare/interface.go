package compare

import "io"

//go:generate mockgen -typed -package=compare -destination=./mocks.go -source=./interface.go

// ReportWriter renders a finished run.
type ReportWriter interface {
	WriteReport(w io.Writer, r *Report) error
}
