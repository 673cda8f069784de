package serializer

const (
	// StdoutURI is the special output path indicating output should be written to stdout.
	StdoutURI = "-"

	// emptyTable is rendered when there is nothing to tabulate.
	emptyTable = "<empty>"
)
