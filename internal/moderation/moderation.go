// Package moderation governs the publication lifecycle of a post:
// pending -> approved | rejected, with no reverse transitions exposed.
package moderation

import "talkspot/api/internal/store"

// InitialStatus derives the status for a freshly created post. Posts from
// admins publish immediately; everything else waits in the queue.
func InitialStatus(authorRole store.Role) store.PostStatus {
	if authorRole == store.RoleAdmin {
		return store.StatusApproved
	}
	return store.StatusPending
}

// Terminal reports whether the status has left the queue. Approve/reject
// on a terminal post simply re-sets the state; callers treat that as a
// no-op, not an error.
func Terminal(status store.PostStatus) bool {
	return status == store.StatusApproved || status == store.StatusRejected
}

// VisibleInFeed: only approved posts appear in the general feed.
func VisibleInFeed(status store.PostStatus) bool {
	return status == store.StatusApproved
}

// VisibleInQueue: pending posts appear only in the moderation queue.
// Rejected posts are shown in neither view.
func VisibleInQueue(status store.PostStatus) bool {
	return status == store.StatusPending
}
