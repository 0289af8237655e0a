package session

import "log"

// BeginUpload marks an upload as in flight. A second call before FinishUpload is rejected.
func (s *Session) BeginUpload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.upload.Active {
		return ErrUploadInProgress
	}
	s.upload = UploadStatus{Active: true}
	return nil
}

// ReportProgress records progress of the in-flight upload
func (s *Session) ReportProgress(progress float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.upload.Active {
		return
	}
	s.upload.Progress = progress
}

// SetUploadWarning attaches a non-fatal warning to the in-flight upload
func (s *Session) SetUploadWarning(warning string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upload.Warning = warning
}

// FinishUpload records the final status and releases the busy flag
func (s *Session) FinishUpload(status UploadStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status.Active = false
	if status.Warning == "" {
		status.Warning = s.upload.Warning
	}
	s.upload = status
	log.Printf("📤 Upload finished: %s (%s)", status.Outcome, status.Status)
}

// AbortUpload releases the busy flag without recording an outcome
func (s *Session) AbortUpload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upload = UploadStatus{}
}

func (s *Session) UploadStatus() UploadStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upload
}
