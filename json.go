package skipenv

import "fmt"

// imageFromJSON decodes a height x width x depth nested
// array, as produced by JSON-encoding a numpy frame.
func imageFromJSON(obj interface{}) (*Image, error) {
	rows, ok := obj.([]interface{})
	if !ok || len(rows) == 0 {
		return nil, fmt.Errorf("%w: observation is not a 3-D array", ErrShape)
	}
	res := &Image{Height: len(rows)}
	for y, rowObj := range rows {
		row, ok := rowObj.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: row %d is not an array", ErrShape, y)
		}
		if y == 0 {
			res.Width = len(row)
		} else if len(row) != res.Width {
			return nil, fmt.Errorf("%w: ragged row %d", ErrShape, y)
		}
		for x, pixelObj := range row {
			pixel, ok := pixelObj.([]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: pixel (%d, %d) is not an array",
					ErrShape, x, y)
			}
			if y == 0 && x == 0 {
				res.Depth = len(pixel)
				res.Data = make([]float64, 0,
					res.Height*res.Width*res.Depth)
			} else if len(pixel) != res.Depth {
				return nil, fmt.Errorf("%w: ragged pixel (%d, %d)", ErrShape,
					x, y)
			}
			for _, compObj := range pixel {
				comp, ok := compObj.(float64)
				if !ok {
					return nil, fmt.Errorf("%w: non-numeric component %T",
						ErrShape, compObj)
				}
				res.Data = append(res.Data, comp)
			}
		}
	}
	if err := res.check(1); err != nil {
		return nil, err
	}
	return res, nil
}
