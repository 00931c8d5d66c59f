package config

type WorkerKeyStruct struct {
	DiagramJobsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	DiagramJobsQueue: "diagram_jobs_queue",
}
