package ili9488

import "time"

// Delayer blocks the caller for at least d.
type Delayer interface {
	Delay(d time.Duration)
}

// DelayFunc adapts a function to Delayer.
type DelayFunc func(d time.Duration)

// Delay calls f(d).
func (f DelayFunc) Delay(d time.Duration) { f(d) }

// Sleep delays with time.Sleep. It is the default for millisecond settle
// times, where scheduler granularity does not matter.
var Sleep Delayer = DelayFunc(time.Sleep)

// BusyWait spins a counted loop instead of yielding to the scheduler. Use it
// for sub-millisecond holds on hosts where time.Sleep rounds up to a tick.
type BusyWait struct {
	loopsPerMicro int64
}

// CalibrateBusyWait measures how many spin iterations fit in one microsecond
// by running the loop for about sample. Call it once at startup, after clock
// configuration.
func CalibrateBusyWait(sample time.Duration) *BusyWait {
	if sample <= 0 {
		sample = 10 * time.Millisecond
	}
	n := int64(1024)
	for {
		start := time.Now()
		spin(n)
		elapsed := time.Since(start)
		if elapsed >= sample || n >= 1<<40 {
			lpm := n * int64(time.Microsecond) / int64(elapsed+1)
			if lpm < 1 {
				lpm = 1
			}
			return &BusyWait{loopsPerMicro: lpm}
		}
		n *= 2
	}
}

// NewBusyWait returns a BusyWait with a known calibration.
func NewBusyWait(loopsPerMicro int64) *BusyWait {
	if loopsPerMicro < 1 {
		loopsPerMicro = 1
	}
	return &BusyWait{loopsPerMicro: loopsPerMicro}
}

// LoopsPerMicro returns the calibration.
func (b *BusyWait) LoopsPerMicro() int64 {
	return b.loopsPerMicro
}

// Delay spins for d, rounded up to a whole microsecond.
func (b *BusyWait) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	us := (int64(d) + int64(time.Microsecond) - 1) / int64(time.Microsecond)
	spin(us * b.loopsPerMicro)
}

var sink int64

//go:noinline
func spin(n int64) {
	var acc int64
	for i := int64(0); i < n; i++ {
		acc += i
	}
	sink = acc
}
