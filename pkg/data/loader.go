package data

import (
	"bufio"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
)

// NaNValues are the cell texts treated as missing on load.
var NaNValues = []string{"", "NA", "NaN", "<nil>"}

// ReadCSV parses comma-separated text with a header row into a frame. Integer and
// float columns are tagged numeric, every other column categorical.
func ReadCSV(r io.Reader) (frame.Frame, error) {
	df := dataframe.ReadCSV(bufio.NewReader(r),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(NaNValues),
	)
	if df.Err != nil {
		return frame.Frame{}, errors.Wrap(df.Err, errors.ErrorTypeParse, "failed to read csv")
	}
	return frame.FromDataFrame(df)
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path string) (frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return frame.Frame{}, errors.Wrap(err, errors.ErrorTypeFile, "failed to open "+path)
	}
	defer file.Close()

	return ReadCSV(file)
}
