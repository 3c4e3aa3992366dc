// Package apitest holds testify mocks of the API service layer.
package apitest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"general-transcriber/internal/api/v1/dto"
	"general-transcriber/internal/api/v1/services"
	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/pipeline"
)

// MockTranscriptService is a testify mock of services.TranscriptService
type MockTranscriptService struct {
	mock.Mock
}

func (m *MockTranscriptService) Upload(ctx context.Context, viewer model.Viewer, file *services.UploadedFile) (*dto.UploadResponse, error) {
	args := m.Called(ctx, viewer, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

func (m *MockTranscriptService) List(ctx context.Context, viewer model.Viewer, limit int) (*dto.TranscriptListResponse, error) {
	args := m.Called(ctx, viewer, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptListResponse), args.Error(1)
}

func (m *MockTranscriptService) Status(ctx context.Context, viewer model.Viewer, id int64) (*dto.StatusResponse, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatusResponse), args.Error(1)
}

func (m *MockTranscriptService) Get(ctx context.Context, viewer model.Viewer, id int64) (*dto.TranscriptResponse, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptResponse), args.Error(1)
}

func (m *MockTranscriptService) Download(ctx context.Context, viewer model.Viewer, id int64) (*dto.TranscriptFile, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptFile), args.Error(1)
}

func (m *MockTranscriptService) Start(ctx context.Context, viewer model.Viewer, id int64) (*dto.StartResponse, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StartResponse), args.Error(1)
}

// MockJobRunner is a testify mock of services.JobRunner
type MockJobRunner struct {
	mock.Mock
}

func (m *MockJobRunner) Start(ctx context.Context, jobID int64) (*pipeline.StartResult, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.StartResult), args.Error(1)
}

func (m *MockJobRunner) Get(ctx context.Context, jobID int64, viewer model.Viewer) (*pipeline.TranscriptView, error) {
	args := m.Called(ctx, jobID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.TranscriptView), args.Error(1)
}
