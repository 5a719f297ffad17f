package imgutil

// ScaleFactor は最大幅・最大高さに収まる縮小率を返します。
// 制限値が 0 以下なら制限なしとして扱い、超過量の大きい方の制限を優先します。
// どちらも超えていなければ 1.0 で、拡大は行いません。
func ScaleFactor(w, h, maxW, maxH int) float64 {
	dw, dh := 0, 0
	if maxW > 0 {
		dw = w - maxW
	}
	if maxH > 0 {
		dh = h - maxH
	}

	switch {
	case dw > 0 && dw >= dh:
		return float64(maxW) / float64(w)
	case dh > 0 && dh >= dw:
		return float64(maxH) / float64(h)
	default:
		return 1.0
	}
}
