package parser

const (
	// GeneratedFilePrefix marks generated artifacts, which are never parsed
	GeneratedFilePrefix = "autogen_"

	// GeneratedFileSuffix ends the name of every generated base file
	GeneratedFileSuffix = "_base.go"
)
