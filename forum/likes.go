package forum

import (
	"encoding/json"
	"sort"
)

type commentKey struct {
	QuestionID int64 `json:"question_id"`
	CommentID  int64 `json:"comment_id"`
}

// LikeSet is one viewer's personal like membership. It only decides the
// direction of a toggle; the shared counters live on Question and Comment.
type LikeSet struct {
	questions map[int64]struct{}
	comments  map[commentKey]struct{}
}

func NewLikeSet() *LikeSet {
	return &LikeSet{
		questions: make(map[int64]struct{}),
		comments:  make(map[commentKey]struct{}),
	}
}

func (l *LikeSet) init() {
	if l.questions == nil {
		l.questions = make(map[int64]struct{})
	}
	if l.comments == nil {
		l.comments = make(map[commentKey]struct{})
	}
}

func (l *LikeSet) LikesQuestion(id int64) bool {
	_, ok := l.questions[id]
	return ok
}

func (l *LikeSet) LikesComment(questionID, commentID int64) bool {
	_, ok := l.comments[commentKey{questionID, commentID}]
	return ok
}

// flipQuestion toggles membership and reports whether id is now liked.
func (l *LikeSet) flipQuestion(id int64) bool {
	l.init()
	if _, ok := l.questions[id]; ok {
		delete(l.questions, id)
		return false
	}
	l.questions[id] = struct{}{}
	return true
}

func (l *LikeSet) flipComment(questionID, commentID int64) bool {
	l.init()
	k := commentKey{questionID, commentID}
	if _, ok := l.comments[k]; ok {
		delete(l.comments, k)
		return false
	}
	l.comments[k] = struct{}{}
	return true
}

func (l *LikeSet) Len() int {
	return len(l.questions) + len(l.comments)
}

type likeSetJSON struct {
	Questions []int64      `json:"questions"`
	Comments  []commentKey `json:"comments"`
}

func (l *LikeSet) MarshalBinary() ([]byte, error) {
	out := likeSetJSON{Questions: []int64{}, Comments: []commentKey{}}
	for id := range l.questions {
		out.Questions = append(out.Questions, id)
	}
	for k := range l.comments {
		out.Comments = append(out.Comments, k)
	}
	sort.Slice(out.Questions, func(i, j int) bool { return out.Questions[i] < out.Questions[j] })
	sort.Slice(out.Comments, func(i, j int) bool {
		if out.Comments[i].QuestionID != out.Comments[j].QuestionID {
			return out.Comments[i].QuestionID < out.Comments[j].QuestionID
		}
		return out.Comments[i].CommentID < out.Comments[j].CommentID
	})
	return json.Marshal(out)
}

func (l *LikeSet) UnmarshalBinary(data []byte) error {
	var in likeSetJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	l.questions = make(map[int64]struct{}, len(in.Questions))
	l.comments = make(map[commentKey]struct{}, len(in.Comments))
	for _, id := range in.Questions {
		l.questions[id] = struct{}{}
	}
	for _, k := range in.Comments {
		l.comments[k] = struct{}{}
	}
	return nil
}
