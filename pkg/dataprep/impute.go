package dataprep

import (
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
)

// ImputeConstant replaces missing cells with a fixed label. The result is categorical.
func ImputeConstant(c frame.Column, constant string) frame.Column {
	vals := texts(c)
	missing := c.IsMissing()
	for i := range vals {
		if missing[i] {
			vals[i] = constant
		}
	}
	return frame.NewCategorical(c.Name(), vals)
}
