// Package testutil provides testing utilities for the general-transcriber
// application.
//
// It contains:
//
// 1. MockJobDAO (mock_job_dao.go): an in-memory repository.JobDAO with
// per-method error injection and a record of progress writes.
//
// 2. Fixtures (fixtures.go): sample jobs, segments and speaker intervals.
//
// 3. RecordingDispatcher (dispatcher.go): a queue.Dispatcher that records
// the job ids it receives.
//
// # Usage Examples
//
//	func TestPipeline(t *testing.T) {
//	    dao := testutil.NewMockJobDAO()
//	    id := dao.Seed(testutil.PendingJob("alice@example.com", "talk.mp3"))
//	    dao.ErrorMap["UpdateProgress"] = errors.New("database is locked")
//	    // run code under test, then inspect dao.ProgressHistory(id)
//	}
package testutil
