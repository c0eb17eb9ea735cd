package forum

// Recorder receives domain events for metrics. metrics.Collector implements it.
type Recorder interface {
	RecordQuestionCreated()
	RecordCommentAdded()
	RecordLike(target string, liked bool)
	RecordAnswerAccepted(accepted bool)
	RecordAuthAttempt(op string, ok bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordQuestionCreated()         {}
func (nopRecorder) RecordCommentAdded()            {}
func (nopRecorder) RecordLike(string, bool)        {}
func (nopRecorder) RecordAnswerAccepted(bool)      {}
func (nopRecorder) RecordAuthAttempt(string, bool) {}
