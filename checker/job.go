// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package checker

// Job is a single item handed from the producer to the workers: either a URL
// to be probed, or a termination marker telling exactly one worker that there
// is no more work. As the marker is a flag and not a reserved URL value, any
// line read, even an empty one, is a proper URL job.
type Job struct {
	URL  string
	stop bool
}

// URLJob returns a job for probing the specified URL.
func URLJob(url string) Job { return Job{URL: url} }

// StopJob returns a termination marker job.
func StopJob() Job { return Job{stop: true} }

// IsStop returns true if this job is a termination marker.
func (j Job) IsStop() bool { return j.stop }
