package selector

// Observer receives progress events from a selection run. When the
// selector evaluates with more than one worker, CompactnessEvaluated is
// called from several goroutines at once.
type Observer interface {
	// FileScanned is called for every mesh-format file in the input directory.
	FileScanned(path string, sizeMB float64, accepted bool)
	// CompactnessEvaluated is called once per stage-one candidate.
	CompactnessEvaluated(path string, score Score)
	// SelectionDone reports the stage-one candidate count and the final count.
	SelectionDone(candidates, selected int)
}

type nopObserver struct{}

func (nopObserver) FileScanned(string, float64, bool)  {}
func (nopObserver) CompactnessEvaluated(string, Score) {}
func (nopObserver) SelectionDone(int, int)             {}

// NopObserver returns an Observer that discards every event.
func NopObserver() Observer {
	return nopObserver{}
}
