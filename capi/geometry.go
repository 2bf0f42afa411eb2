package capi

import "github.com/futurepaul/zello"

// MeasureText measures the buffer's text wrapped at maxWidth logical
// pixels. On failure the outputs are zeroed and the detail is available
// via ReadLastError.
func MeasureText(eng *zello.Engine, textBuf []byte, fontSize, maxWidth, scale float64, outWidth, outHeight *float64) Status {
	w, h, err := eng.MeasureText(DecodeCString(textBuf), fontSize, maxWidth, scale)
	if err != nil {
		*outWidth, *outHeight = 0, 0
		return StatusErr
	}
	*outWidth, *outHeight = w, h
	return StatusOk
}

// CaretX returns the widget's caret position in logical pixels.
func CaretX(eng *zello.Engine, widgetID uint64, fontSize, scale float64, outX *float64) Status {
	x, err := eng.CaretX(widgetID, fontSize, scale)
	if err != nil {
		*outX = 0
		return StatusErr
	}
	*outX = x
	return StatusOk
}

// HitTest maps a logical x position within the buffer's text to a byte
// offset.
func HitTest(eng *zello.Engine, textBuf []byte, fontSize, x, scale float64, outOffset *int64) Status {
	off, err := eng.HitTest(DecodeCString(textBuf), fontSize, x, scale)
	if err != nil {
		*outOffset = 0
		return StatusErr
	}
	*outOffset = int64(off)
	return StatusOk
}

// SelectionBounds returns the selection edge positions in logical
// pixels. outHas is 0 when nothing is selected.
func SelectionBounds(eng *zello.Engine, widgetID uint64, fontSize, scale float64, outX0, outX1 *float64, outHas *int32) Status {
	x0, x1, ok, err := eng.SelectionBounds(widgetID, fontSize, scale)
	if err != nil {
		*outX0, *outX1, *outHas = 0, 0, 0
		return StatusErr
	}
	*outX0, *outX1 = x0, x1
	if ok {
		*outHas = 1
	} else {
		*outHas = 0
	}
	return StatusOk
}
