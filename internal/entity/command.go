package entity

import "fmt"

// StderrPolicy tells the command runner what to do with non-empty stderr output.
type StderrPolicy int

const (
	StderrLog StderrPolicy = iota
	StderrFail
)

func (p StderrPolicy) String() string {
	switch p {
	case StderrLog:
		return "Log"
	case StderrFail:
		return "Fail"
	}

	return fmt.Sprintf("StderrPolicy(%d)", int(p))
}
