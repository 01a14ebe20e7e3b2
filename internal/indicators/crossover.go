package indicators

// CrossedAbove reports whether series a crossed above series b at bar i:
// a is above b now and was at or below it on the previous bar. Both bars
// must carry defined values on both series; anything else is "no crossover".
func CrossedAbove(a, b Series, i int) bool {
	return CrossedAboveLookback(a, b, i, 1)
}

// CrossedBelow is the mirror of CrossedAbove.
func CrossedBelow(a, b Series, i int) bool {
	return CrossedBelowLookback(a, b, i, 1)
}

// CrossedAboveLookback compares bar i against bar i-lookback instead of the
// immediately preceding bar. Golden/Death Cross detection uses a 20-bar
// lookback so that a slow crossing is not re-flagged as noise every bar.
func CrossedAboveLookback(a, b Series, i, lookback int) bool {
	curA, okA := a.At(i)
	curB, okB := b.At(i)
	prevA, okPA := a.At(i - lookback)
	prevB, okPB := b.At(i - lookback)
	if !okA || !okB || !okPA || !okPB {
		return false
	}
	return curA > curB && prevA <= prevB
}

// CrossedBelowLookback is the mirror of CrossedAboveLookback.
func CrossedBelowLookback(a, b Series, i, lookback int) bool {
	curA, okA := a.At(i)
	curB, okB := b.At(i)
	prevA, okPA := a.At(i - lookback)
	prevB, okPB := b.At(i - lookback)
	if !okA || !okB || !okPA || !okPB {
		return false
	}
	return curA < curB && prevA >= prevB
}
