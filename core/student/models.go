package student

import "github.com/trezcool/mahudhurio/core"

type Student struct {
	ID     int64  `db:"id" json:"id"`
	RollNo string `db:"roll_no" json:"roll_no"`
	Name   string `db:"name" json:"name"`
}

// NewStudent contains information needed to add a Student to the roster.
type NewStudent struct {
	RollNo string `json:"roll_no" validate:"notblank"`
	Name   string `json:"name" validate:"notblank"`
}

func (ns *NewStudent) Validate() error {
	ns.RollNo = core.CleanString(ns.RollNo)
	ns.Name = core.CleanString(ns.Name)
	return core.ValidateStruct(ns)
}
