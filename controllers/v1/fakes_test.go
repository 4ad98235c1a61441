package apiv1

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"ai-interviewer-backend/models"
	candidateapimodels "ai-interviewer-backend/models/api/candidate"
	interviewapimodels "ai-interviewer-backend/models/api/interview"
	dbmodels "ai-interviewer-backend/models/db"
)

type fakeTextServices struct {
	parsed       json.RawMessage
	question     string
	err          error
	lastParsed   json.RawMessage
	lastAnswer   string
	lastResume   string
	firstCalled  bool
	nextQuestion bool
}

func (f *fakeTextServices) ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error) {
	f.lastResume = resumeText
	return f.parsed, f.err
}

func (f *fakeTextServices) FirstQuestion(ctx context.Context, parsedResume json.RawMessage) (string, error) {
	f.firstCalled = true
	f.lastParsed = parsedResume
	return f.question, f.err
}

func (f *fakeTextServices) NextQuestion(ctx context.Context, parsedResume json.RawMessage, lastAnswer string) (string, error) {
	f.nextQuestion = true
	f.lastParsed = parsedResume
	f.lastAnswer = lastAnswer
	return f.question, f.err
}

type fakeInterviewer struct {
	mu          sync.Mutex
	err         error
	view        interviewapimodels.SessionView
	sessionIDs  []string
	file        models.File
	contact     dbmodels.ContactInfo
	lookupEmail string
	audio       []byte
	notifyEmail string
}

func (f *fakeInterviewer) record(sessionID string) (interviewapimodels.SessionView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionIDs = append(f.sessionIDs, sessionID)
	view := f.view
	view.SessionID = sessionID
	return view, f.err
}

func (f *fakeInterviewer) CreateSession(ctx context.Context) (string, error) {
	return "s1", f.err
}

func (f *fakeInterviewer) LoadProfileFromUpload(ctx context.Context, sessionID string, file models.File, contact dbmodels.ContactInfo) (interviewapimodels.SessionView, error) {
	f.file = file
	f.contact = contact
	return f.record(sessionID)
}

func (f *fakeInterviewer) LoadProfileFromLookup(ctx context.Context, sessionID, email string) (interviewapimodels.SessionView, error) {
	f.lookupEmail = email
	return f.record(sessionID)
}

func (f *fakeInterviewer) Advance(ctx context.Context, sessionID string, answerAudio []byte) (interviewapimodels.SessionView, error) {
	f.audio = answerAudio
	return f.record(sessionID)
}

func (f *fakeInterviewer) Reset(ctx context.Context, sessionID string) (interviewapimodels.SessionView, error) {
	return f.record(sessionID)
}

func (f *fakeInterviewer) View(ctx context.Context, sessionID string) (interviewapimodels.SessionView, error) {
	return f.record(sessionID)
}

func (f *fakeInterviewer) QuestionAudio(ctx context.Context, sessionID string) ([]byte, error) {
	if _, err := f.record(sessionID); err != nil {
		return nil, err
	}
	return []byte("RIFF-wav"), nil
}

func (f *fakeInterviewer) Report(ctx context.Context, sessionID string) ([]byte, error) {
	if _, err := f.record(sessionID); err != nil {
		return nil, err
	}
	return []byte("%PDF-1.3"), nil
}

func (f *fakeInterviewer) Finish(ctx context.Context, sessionID, notifyEmail string) (interviewapimodels.SessionView, error) {
	f.notifyEmail = notifyEmail
	return f.record(sessionID)
}

type fakeCandidates struct {
	records map[string]dbmodels.Candidate
}

func (f *fakeCandidates) Save(contact dbmodels.ContactInfo, parsedResume json.RawMessage, rawText string) (string, error) {
	return "", nil
}

func (f *fakeCandidates) Find(email string) (*dbmodels.Candidate, error) {
	rec, ok := f.records[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeCandidates) List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error) {
	result := []candidateapimodels.CandidateView{}
	for _, rec := range f.records {
		result = append(result, candidateapimodels.CandidateConvert(rec))
	}
	return result, int64(len(result)), nil
}

func (f *fakeCandidates) Export(filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error) {
	return bytes.NewBufferString("xlsx-data"), nil
}

type fakeFiles struct {
	files map[string][]byte
}

func (f *fakeFiles) UploadResume(ctx context.Context, email string, file models.File) (string, error) {
	return "", nil
}

func (f *fakeFiles) UploadAnswer(ctx context.Context, sessionID string, questionIndex int, audio []byte) (string, error) {
	return "", nil
}

func (f *fakeFiles) GetFile(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.files[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	return data, nil
}
