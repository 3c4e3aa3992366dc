package model

// Viewer is the identity making a request
type Viewer struct {
	Email string
	Admin bool
}

// CanView reports whether the viewer may see the job
func (v Viewer) CanView(job *TranscriptionJob) bool {
	return v.Admin || job.OwnedBy(v.Email)
}
