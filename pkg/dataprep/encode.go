package dataprep

import (
	"sort"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
)

// EncodeCategorical one-hot encodes a slice of string categories. It returns the
// sorted distinct categories, with frame.Missing last, and one indicator column per
// category, so that indicators[k][i] is 1 exactly when data[i] == categories[k].
func EncodeCategorical(data []string) ([]string, [][]float64) {
	unique := map[string]int{}
	for _, v := range data {
		unique[v] = 0
	}
	categories := make([]string, 0, len(unique))
	for v := range unique {
		categories = append(categories, v)
	}
	sort.Slice(categories, func(a, b int) bool {
		if categories[a] == frame.Missing || categories[b] == frame.Missing {
			return categories[b] == frame.Missing && categories[a] != frame.Missing
		}
		return categories[a] < categories[b]
	})
	for k, v := range categories {
		unique[v] = k
	}

	indicators := make([][]float64, len(categories))
	for k := range indicators {
		indicators[k] = make([]float64, len(data))
	}
	for i, v := range data {
		indicators[unique[v]][i] = 1
	}
	return categories, indicators
}

// OneHot expands each named categorical column into indicator columns named after
// the category values, in column order then sorted category order. Missing cells
// form their own frame.Missing category. A category name that appears under more
// than one column, or clashes with a reserved name, is qualified as column_value.
func OneHot(f frame.Frame, names []string, reserved []string) ([]frame.Column, error) {
	type block struct {
		column     string
		categories []string
		indicators [][]float64
	}

	blocks := make([]block, 0, len(names))
	uses := make(map[string]int)
	for _, r := range reserved {
		uses[r]++
	}
	for _, name := range names {
		c, err := f.Col(name)
		if err != nil {
			return nil, err
		}
		cats, ind := EncodeCategorical(c.Strings())
		for _, cat := range cats {
			uses[cat]++
		}
		blocks = append(blocks, block{column: name, categories: cats, indicators: ind})
	}

	var out []frame.Column
	for _, b := range blocks {
		for k, cat := range b.categories {
			label := cat
			if uses[cat] > 1 {
				label = b.column + "_" + cat
			}
			out = append(out, frame.NewNumeric(label, b.indicators[k]))
		}
	}
	return out, nil
}
