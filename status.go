package main

import (
	"fmt"
	"time"
)

const statusTTL = 3 * time.Second

// status is the toolbar status line. Errors outrank pending requests, which
// outrank notices; both messages expire after statusTTL.
type status struct {
	now func() time.Time

	err      string
	errAt    time.Time
	notice   string
	noticeAt time.Time
}

func (s *status) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *status) fail(msg string) {
	s.err = msg
	s.errAt = s.clock()
}

func (s *status) notify(msg string) {
	s.notice = msg
	s.noticeAt = s.clock()
}

func (s *status) text(pending, count int) string {
	now := s.clock()
	switch {
	case s.err != "" && now.Sub(s.errAt) < statusTTL:
		return s.err
	case pending > 0:
		return fmt.Sprintf("loading %d...", pending)
	case s.notice != "" && now.Sub(s.noticeAt) < statusTTL:
		return s.notice
	}
	return fmt.Sprintf("%d tiles", count)
}
