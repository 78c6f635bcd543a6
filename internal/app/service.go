package app

import (
	"context"
	"net/http"
	"strings"
	"time"

	"talkspot/api/internal/auth"
	"talkspot/api/internal/authpw"
	"talkspot/api/internal/chat"
	"talkspot/api/internal/config"
	"talkspot/api/internal/email"
	"talkspot/api/internal/moderation"
	"talkspot/api/internal/notify"
	"talkspot/api/internal/rbac"
	"talkspot/api/internal/search"
	"talkspot/api/internal/session"
	"talkspot/api/internal/store"
	"talkspot/api/internal/util"
)

// Session is the viewing context every derived view is parameterized by:
// who is looking, with which role.
type Session struct {
	Token        string
	RefreshToken string
	UserID       string
	UserName     string
	Role         string
	ExpiresAt    time.Time
}

type CreatePostInput struct {
	Content string `json:"content"`
	Image   string `json:"image"`
	Link    string `json:"link"`
	Type    string `json:"type"`
}

type CreateEventInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location"`
	Type         string `json:"type"`
	ReminderDays int    `json:"reminderDays"`
}

type AddEmployeeInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	Department string `json:"department"`
	HireDate   string `json:"hireDate"`
	BirthDate  string `json:"birthDate"`
	Avatar     string `json:"avatar"`
	Role       string `json:"role"`
}

var allowedPostTypes = map[store.PostType]struct{}{
	store.TypePost:         {},
	store.TypeAnnouncement: {},
}

var allowedEventTypes = map[store.EventType]struct{}{
	store.EventMeeting:  {},
	store.EventTraining: {},
	store.EventCompany:  {},
	store.EventBirthday: {},
}

// Service wires the entity store to its derived views and to the auth,
// search and mail collaborators. One instance per process; tests build a
// fresh one around a fresh store.
type Service struct {
	cfg      config.Config
	store    *store.MemoryStore
	search   *search.Service
	sessions session.Store
	mailer   *email.Service
	gate     *authpw.Gate
}

func New(cfg config.Config, dataStore *store.MemoryStore, searchService *search.Service, sessions session.Store, mailer *email.Service) (*Service, error) {
	gate, err := authpw.NewGate(cfg.LoginPassword)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:      cfg,
		store:    dataStore,
		search:   searchService,
		sessions: sessions,
		mailer:   mailer,
		gate:     gate,
	}, nil
}

// Store exposes the underlying entity store handle for collaborators
// that need direct read access (health checks, tests).
func (s *Service) Store() *store.MemoryStore {
	return s.store
}

// Bootstrap pushes the current collections into the external search
// index so a configured Meilisearch catches up with the snapshot.
func (s *Service) Bootstrap(ctx context.Context) error {
	if s.search == nil {
		return nil
	}
	users := s.store.Users()
	posts := s.store.Posts()
	events := s.store.Events()

	employeeRecords := make([]search.EmployeeRecord, 0, len(users))
	for _, user := range users {
		employeeRecords = append(employeeRecords, search.EmployeeRecord{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
	}
	eventRecords := make([]search.EventRecord, 0, len(events))
	for _, event := range events {
		eventRecords = append(eventRecords, search.EventRecord{ID: event.ID, Title: event.Title})
	}
	postRecords := make([]search.PostRecord, 0, len(posts))
	var commentRecords []search.CommentRecord
	for _, post := range posts {
		postRecords = append(postRecords, search.PostRecord{ID: post.ID, Content: post.Content})
		for _, comment := range post.Comments {
			commentRecords = append(commentRecords, search.CommentRecord{
				ID:      comment.ID,
				PostID:  post.ID,
				Content: comment.Content,
			})
		}
	}
	s.search.ReindexAll(eventRecords, employeeRecords, postRecords, commentRecords)
	return nil
}

// === Sessions ===

// Login checks the shared directory password, then resolves the account
// by email. Both failure modes answer identically so the endpoint does
// not leak which emails exist.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (Session, error) {
	if !s.gate.Verify(password) {
		return Session{}, domainError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}
	user, err := s.store.GetUserByEmail(strings.TrimSpace(emailAddr))
	if err != nil {
		return Session{}, domainError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}
	if !user.IsActive {
		return Session{}, domainError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	data, err := s.sessions.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, domainError(http.StatusUnauthorized, "UNAUTHORIZED", "Refresh token invalid", nil)
	}
	user, err := s.store.GetUserByID(data.UserID)
	if err != nil {
		return Session{}, domainError(http.StatusUnauthorized, "UNAUTHORIZED", "Refresh token invalid", nil)
	}
	if err := s.sessions.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) issueSession(ctx context.Context, user store.User) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)

	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), auth.Claims{
		Sub:  user.ID,
		Name: user.FirstName + " " + user.LastName,
		Role: string(user.Role),
		Exp:  expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refresh), user.ID, string(user.Role), refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.ID,
		UserName:     user.FirstName + " " + user.LastName,
		Role:         string(user.Role),
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token)
	if err != nil {
		return Session{}, err
	}
	user, err := s.store.GetUserByID(claims.Sub)
	if err != nil {
		return Session{}, auth.ErrInvalidToken
	}
	return Session{
		Token:     token,
		UserID:    user.ID,
		UserName:  user.FirstName + " " + user.LastName,
		Role:      string(user.Role),
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		_ = s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
	}
	return nil
}

func (s *Service) can(sess Session, action rbac.Action) bool {
	return rbac.Can(rbac.Normalize(sess.Role), action)
}

// === Feed ===

// CreatePost derives the initial moderation status from the author's
// role: admin posts publish immediately, everyone else lands in the
// queue.
func (s *Service) CreatePost(sess Session, input CreatePostInput) (store.Post, error) {
	if !s.can(sess, rbac.ActionPost) {
		return store.Post{}, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	content := strings.TrimSpace(input.Content)
	if content == "" && input.Image == "" && strings.TrimSpace(input.Link) == "" {
		return store.Post{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "post needs content, an image or a link", nil)
	}
	postType := store.TypePost
	if input.Type != "" {
		postType = store.PostType(input.Type)
		if _, ok := allowedPostTypes[postType]; !ok {
			return store.Post{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid post type", nil)
		}
	}

	post := store.Post{
		ID:        util.ShortID("post"),
		AuthorID:  sess.UserID,
		Content:   content,
		Image:     input.Image,
		Link:      strings.TrimSpace(input.Link),
		Status:    moderation.InitialStatus(rbacRole(sess.Role)),
		CreatedAt: time.Now().UTC(),
		Likes:     []string{},
		Comments:  []store.Comment{},
		Type:      postType,
	}
	if err := s.store.AddPost(post); err != nil {
		return store.Post{}, storeError(err)
	}
	s.search.IndexPost(search.PostRecord{ID: post.ID, Content: post.Content})
	return post, nil
}

// SharePost copies the original's content, media and link into a new
// post of type "share" referencing the original, with the status derived
// from the sharer's own role.
func (s *Service) SharePost(sess Session, postID string) (store.Post, error) {
	if !s.can(sess, rbac.ActionPost) {
		return store.Post{}, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	original, err := s.store.GetPost(postID)
	if err != nil {
		return store.Post{}, storeError(err)
	}

	shared := store.Post{
		ID:        util.ShortID("post"),
		AuthorID:  sess.UserID,
		Content:   original.Content,
		Image:     original.Image,
		Link:      original.Link,
		Status:    moderation.InitialStatus(rbacRole(sess.Role)),
		CreatedAt: time.Now().UTC(),
		Likes:     []string{},
		Comments:  []store.Comment{},
		Type:      store.TypeShare,
		ParentID:  original.ID,
	}
	if err := s.store.AddPost(shared); err != nil {
		return store.Post{}, storeError(err)
	}
	s.search.IndexPost(search.PostRecord{ID: shared.ID, Content: shared.Content})
	return shared, nil
}

func (s *Service) AddComment(sess Session, postID, content string) (store.Comment, error) {
	if !s.can(sess, rbac.ActionComment) {
		return store.Comment{}, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	comment := store.Comment{
		ID:        util.ShortID("cmt"),
		AuthorID:  sess.UserID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
		Likes:     []string{},
	}
	if err := s.store.AddComment(postID, comment); err != nil {
		return store.Comment{}, storeError(err)
	}
	s.search.IndexComment(search.CommentRecord{ID: comment.ID, PostID: postID, Content: comment.Content})
	return comment, nil
}

// ToggleLike flips the viewer's membership in the post's like set.
func (s *Service) ToggleLike(sess Session, postID string) error {
	return storeError(s.store.LikePost(postID, sess.UserID))
}

func (s *Service) ToggleCommentLike(sess Session, postID, commentID string) error {
	return storeError(s.store.LikeComment(postID, commentID, sess.UserID))
}

// ApprovePost is privileged: the caller must present an admin session.
// Approving an already-terminal post just re-sets the status.
func (s *Service) ApprovePost(sess Session, postID string) error {
	if !s.can(sess, rbac.ActionModerate) {
		return domainError(http.StatusForbidden, "FORBIDDEN", "Moderation requires the admin role", nil)
	}
	return storeError(s.store.ApprovePost(postID))
}

func (s *Service) RejectPost(sess Session, postID string) error {
	if !s.can(sess, rbac.ActionModerate) {
		return domainError(http.StatusForbidden, "FORBIDDEN", "Moderation requires the admin role", nil)
	}
	return storeError(s.store.RejectPost(postID))
}

// Feed returns approved posts only, newest first, with resolved authors.
func (s *Service) Feed(sess Session) []map[string]any {
	users := s.store.Users()
	items := make([]map[string]any, 0)
	for _, post := range s.store.Posts() {
		if !moderation.VisibleInFeed(post.Status) {
			continue
		}
		items = append(items, s.postPayload(post, users, sess.UserID))
	}
	return items
}

// ModerationQueue returns pending posts for admin review.
func (s *Service) ModerationQueue(sess Session) ([]map[string]any, error) {
	if !s.can(sess, rbac.ActionModerate) {
		return nil, domainError(http.StatusForbidden, "FORBIDDEN", "Moderation requires the admin role", nil)
	}
	users := s.store.Users()
	items := make([]map[string]any, 0)
	for _, post := range s.store.Posts() {
		if !moderation.VisibleInQueue(post.Status) {
			continue
		}
		items = append(items, s.postPayload(post, users, sess.UserID))
	}
	return items, nil
}

func (s *Service) postPayload(post store.Post, users []store.User, viewerID string) map[string]any {
	comments := make([]map[string]any, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, map[string]any{
			"id":        comment.ID,
			"authorId":  comment.AuthorID,
			"author":    displayName(users, comment.AuthorID),
			"content":   comment.Content,
			"createdAt": comment.CreatedAt.Format(time.RFC3339),
			"likes":     len(comment.Likes),
			"likedByMe": contains(comment.Likes, viewerID),
		})
	}
	payload := map[string]any{
		"id":        post.ID,
		"authorId":  post.AuthorID,
		"author":    displayName(users, post.AuthorID),
		"avatar":    avatarOf(users, post.AuthorID),
		"content":   post.Content,
		"status":    string(post.Status),
		"type":      string(post.Type),
		"createdAt": post.CreatedAt.Format(time.RFC3339),
		"likes":     len(post.Likes),
		"likedByMe": contains(post.Likes, viewerID),
		"comments":  comments,
	}
	if post.Image != "" {
		payload["image"] = post.Image
	}
	if post.Link != "" {
		payload["link"] = post.Link
	}
	if post.ParentID != "" {
		payload["parentId"] = post.ParentID
	}
	return payload
}

// === Events ===

func (s *Service) CreateEvent(sess Session, input CreateEventInput) (store.Event, error) {
	if !s.can(sess, rbac.ActionCreateEvent) {
		return store.Event{}, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return store.Event{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required", nil)
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(input.Date))
	if err != nil {
		return store.Event{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "date must be YYYY-MM-DD", nil)
	}
	eventType := store.EventMeeting
	if input.Type != "" {
		eventType = store.EventType(input.Type)
		if _, ok := allowedEventTypes[eventType]; !ok {
			return store.Event{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid event type", nil)
		}
	}
	reminderDays := input.ReminderDays
	if reminderDays == 0 {
		reminderDays = 1
	}

	event := store.Event{
		ID:           util.ShortID("evt"),
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Date:         date,
		Time:         strings.TrimSpace(input.Time),
		Location:     strings.TrimSpace(input.Location),
		Type:         eventType,
		Attendees:    []string{},
		ReminderDays: reminderDays,
		CreatedBy:    sess.UserID,
	}
	if err := s.store.AddEvent(event); err != nil {
		return store.Event{}, storeError(err)
	}
	s.search.IndexEvent(search.EventRecord{ID: event.ID, Title: event.Title})
	return event, nil
}

func (s *Service) Events() []store.Event {
	return s.store.Events()
}

// === Messages ===

func (s *Service) SendMessage(sess Session, receiverID, content string) (store.Message, error) {
	if !s.can(sess, rbac.ActionMessage) {
		return store.Message{}, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	if _, err := s.store.GetUserByID(receiverID); err != nil {
		return store.Message{}, storeError(err)
	}
	message := store.Message{
		ID:         util.ShortID("msg"),
		SenderID:   sess.UserID,
		ReceiverID: receiverID,
		Content:    strings.TrimSpace(content),
		Timestamp:  time.Now().UTC(),
		Read:       false,
	}
	if err := s.store.AddMessage(message); err != nil {
		return store.Message{}, storeError(err)
	}
	return message, nil
}

// Conversations lists the viewer's conversation list: every counterpart
// with traffic, plus counterparts whose name matches the search term.
func (s *Service) Conversations(sess Session, term string) []map[string]any {
	conversations := chat.FilterList(
		chat.Conversations(s.store.Users(), s.store.Messages(), sess.UserID),
		term,
	)
	items := make([]map[string]any, 0, len(conversations))
	for _, conversation := range conversations {
		item := map[string]any{
			"id":          conversation.ID,
			"user":        conversation.User,
			"unreadCount": conversation.UnreadCount,
		}
		if conversation.LastMessage != nil {
			item["lastMessage"] = *conversation.LastMessage
		}
		items = append(items, item)
	}
	return items
}

// OpenConversation returns the full thread with one counterpart and
// marks every unread incoming message as seen, one idempotent mark per
// message.
func (s *Service) OpenConversation(sess Session, otherID string) (map[string]any, error) {
	if _, err := s.store.GetUserByID(otherID); err != nil {
		return nil, storeError(err)
	}
	conversations := chat.Conversations(s.store.Users(), s.store.Messages(), sess.UserID)
	for _, conversation := range conversations {
		if conversation.ID != otherID {
			continue
		}
		marked := chat.MarkRead(s.store, conversation, sess.UserID)
		// Re-read so the payload reflects the marks.
		messages := make([]store.Message, 0, len(conversation.Messages))
		for _, m := range s.store.Messages() {
			if (m.SenderID == sess.UserID && m.ReceiverID == otherID) ||
				(m.SenderID == otherID && m.ReceiverID == sess.UserID) {
				messages = append(messages, m)
			}
		}
		return map[string]any{
			"id":       conversation.ID,
			"user":     conversation.User,
			"messages": messages,
			"marked":   marked,
		}, nil
	}
	return nil, domainError(http.StatusNotFound, "NOT_FOUND", "conversation not found", nil)
}

// === Notifications ===

func (s *Service) Notifications(sess Session) map[string]any {
	feed := notify.Aggregate(
		s.store.Users(),
		s.store.Posts(),
		s.store.Events(),
		s.store.Messages(),
		sess.UserID,
		time.Now(),
	)
	return map[string]any{
		"all":       feed.All(),
		"events":    nonNilNotifications(feed.Events),
		"feed":      nonNilNotifications(feed.Feed),
		"approvals": nonNilNotifications(feed.Approvals),
		"messages":  nonNilNotifications(feed.Messages),
		"count":     feed.Count(),
	}
}

// SendReminderDigest mails every active user their upcoming event
// reminders. Admin-only; requires SMTP to be configured.
func (s *Service) SendReminderDigest(sess Session) (int, error) {
	if !s.can(sess, rbac.ActionModerate) {
		return 0, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	if s.mailer == nil || !s.mailer.IsConfigured() {
		return 0, domainError(http.StatusServiceUnavailable, "EMAIL_NOT_CONFIGURED", "SMTP is not configured", nil)
	}

	users := s.store.Users()
	posts := s.store.Posts()
	events := s.store.Events()
	messages := s.store.Messages()
	now := time.Now()

	sent := 0
	for _, user := range users {
		if !user.IsActive {
			continue
		}
		feed := notify.Aggregate(users, posts, events, messages, user.ID, now)
		if len(feed.Events) == 0 {
			continue
		}
		if err := s.mailer.SendReminderDigest(user.Email, user.FirstName, feed.Events); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// === Search ===

func (s *Service) Search(query string, limit int) search.Response {
	return s.search.Search(search.Query{Text: query, Limit: limit})
}

// === Directory ===

func (s *Service) Directory() []store.User {
	return s.store.Users()
}

func (s *Service) AddEmployee(sess Session, input AddEmployeeInput) (store.User, error) {
	if !s.can(sess, rbac.ActionManageDirectory) {
		return store.User{}, domainError(http.StatusForbidden, "FORBIDDEN", "Directory changes require the admin role", nil)
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.Email) == "" {
		return store.User{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "firstName and email are required", nil)
	}
	user := store.User{
		ID:         util.ShortID("usr"),
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Position:   strings.TrimSpace(input.Position),
		Department: strings.TrimSpace(input.Department),
		HireDate:   strings.TrimSpace(input.HireDate),
		BirthDate:  strings.TrimSpace(input.BirthDate),
		Avatar:     strings.TrimSpace(input.Avatar),
		Role:       store.Role(rbac.Normalize(input.Role)),
		IsActive:   true,
	}
	if err := s.store.AddUser(user); err != nil {
		return store.User{}, storeError(err)
	}
	s.search.IndexEmployee(search.EmployeeRecord{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	return user, nil
}

func (s *Service) RemoveEmployee(sess Session, userID string) error {
	if !s.can(sess, rbac.ActionManageDirectory) {
		return domainError(http.StatusForbidden, "FORBIDDEN", "Directory changes require the admin role", nil)
	}
	if userID == sess.UserID {
		return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "cannot remove your own account", nil)
	}
	if err := s.store.RemoveUser(userID); err != nil {
		return storeError(err)
	}
	s.search.DeleteEmployee(userID)
	return nil
}

// === Dashboard ===

// DashboardStats mirrors the landing page counters: approved and pending
// posts, upcoming events, and the viewer's unread messages.
func (s *Service) DashboardStats(sess Session) map[string]any {
	approved, pending := 0, 0
	for _, post := range s.store.Posts() {
		switch post.Status {
		case store.StatusApproved:
			approved++
		case store.StatusPending:
			pending++
		}
	}
	now := time.Now()
	upcoming := 0
	for _, event := range s.store.Events() {
		if event.Date.After(now) {
			upcoming++
		}
	}
	unread := 0
	for _, message := range s.store.Messages() {
		if message.ReceiverID == sess.UserID && !message.Read {
			unread++
		}
	}
	return map[string]any{
		"employees":      len(s.store.Users()),
		"approvedPosts":  approved,
		"pendingPosts":   pending,
		"upcomingEvents": upcoming,
		"unreadMessages": unread,
	}
}

func rbacRole(role string) store.Role {
	return store.Role(rbac.Normalize(role))
}

func displayName(users []store.User, userID string) string {
	for _, user := range users {
		if user.ID == userID {
			return strings.TrimSpace(user.FirstName + " " + user.LastName)
		}
	}
	return "Someone"
}

func avatarOf(users []store.User, userID string) string {
	for _, user := range users {
		if user.ID == userID {
			return user.Avatar
		}
	}
	return ""
}

func contains(set []string, member string) bool {
	for _, existing := range set {
		if existing == member {
			return true
		}
	}
	return false
}

func nonNilNotifications(items []notify.Notification) []notify.Notification {
	if items == nil {
		return []notify.Notification{}
	}
	return items
}
