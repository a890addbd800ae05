package types

import (
	"errors"
	"fmt"
)

// Status is the outcome of a single rename.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// FileKind identifies the member of a file group.
type FileKind string

const (
	KindVideo     FileKind = "video"
	KindSidecar   FileKind = "sidecar"
	KindThumbnail FileKind = "thumbnail"
)

// Date is a month/day/year triple as written in a description.
// Values are not validated; 13/45/2023 is kept as is.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String formats the date as zero-padded YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// RenameOperation is one file move within the target directory.
type RenameOperation struct {
	Kind       FileKind
	SourcePath string
	TargetPath string
	Status     Status
	Err        error
}

// Changed reports whether the operation moves the file at all.
func (op *RenameOperation) Changed() bool {
	return op != nil && op.SourcePath != op.TargetPath
}

// GroupOperation is the rename of one video together with its sidecar and thumbnail.
type GroupOperation struct {
	Base      string // Video filename without extension
	Date      string // Formatted date used for the rewrite, empty when skipped
	Video     *RenameOperation
	Sidecar   *RenameOperation
	Thumbnail *RenameOperation
	Reason    string // Why the group was skipped
}

// Members returns the non-nil member operations in rename order.
func (g *GroupOperation) Members() []*RenameOperation {
	var ops []*RenameOperation
	for _, op := range []*RenameOperation{g.Video, g.Sidecar, g.Thumbnail} {
		if op != nil {
			ops = append(ops, op)
		}
	}
	return ops
}

// Status summarizes the group: failed if any member failed, success if any
// member was renamed, skipped otherwise.
func (g *GroupOperation) Status() Status {
	members := g.Members()
	if len(members) == 0 {
		return StatusSkipped
	}
	st := StatusSkipped
	for _, op := range members {
		switch op.Status {
		case StatusFailed:
			return StatusFailed
		case StatusPending:
			st = StatusPending
		case StatusSuccess:
			if st != StatusPending {
				st = StatusSuccess
			}
		}
	}
	return st
}

// Err joins the member errors.
func (g *GroupOperation) Err() error {
	var errs []error
	for _, op := range g.Members() {
		if op.Err != nil {
			errs = append(errs, op.Err)
		}
	}
	return errors.Join(errs...)
}
