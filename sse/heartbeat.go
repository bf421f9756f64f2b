package sse

import "time"

// Heartbeat sends a comment-line ping on s every interval until done
// is closed. Intended to run in its own goroutine
// alongside a Stream; a failed SendComment (stream already closed)
// simply ends the loop rather than erroring the caller a second time,
// since Stream.Close already surfaces write failures.
func Heartbeat(done <-chan struct{}, s *Stream, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := s.SendComment(" ping"); err != nil {
				return
			}
		}
	}
}
