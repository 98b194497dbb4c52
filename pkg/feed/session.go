package feed

// Step is the outcome of absorbing one extraction pass.
type Step int

const (
	Continue Step = iota
	Done
)

func (step Step) String() string {
	if step == Done {
		return "done"
	}

	return "continue"
}

// boilerplate holds the login and signup interstitials that render like posts.
var boilerplate = map[string]struct{}{
	"Don’t miss what’s happening": {},
	"Sign up":                     {},
	"Log in":                      {},
}

/*
Session carries the mutable state of one scrape run: the set of accepted
texts, the accepted posts in feed order and whether the stop marker has been
reached. It is owned by a single run and is not safe for concurrent use.
*/
type Session struct {
	marker *StopMarker
	seen   map[string]struct{}
	posts  []Post
	done   bool
}

func NewSession(marker *StopMarker) *Session {
	return &Session{
		marker: marker,
		seen:   make(map[string]struct{}),
	}
}

/*
Accept admits post unless its text is empty, boilerplate or already seen.
It reports whether the post was added.
*/
func (session *Session) Accept(post Post) bool {
	if session.done || post.Text == "" {
		return false
	}

	if _, ok := boilerplate[post.Text]; ok {
		return false
	}

	if _, ok := session.seen[post.Text]; ok {
		return false
	}

	session.seen[post.Text] = struct{}{}
	session.posts = append(session.posts, post)

	if session.marker.Matches(post) {
		session.done = true
	}

	return true
}

/*
Absorb feeds one pass worth of candidates through Accept and returns Done
once the stop marker has been accepted. Candidates after the marker in the
same pass are older than it and are not accepted.
*/
func (session *Session) Absorb(candidates []Post) (Step, int) {
	accepted := 0

	for _, post := range candidates {
		if session.Accept(post) {
			accepted++
		}
	}

	if session.done {
		return Done, accepted
	}

	return Continue, accepted
}

// Posts returns the accepted posts in the order they were accepted.
func (session *Session) Posts() []Post {
	out := make([]Post, len(session.posts))
	copy(out, session.posts)
	return out
}

func (session *Session) Len() int {
	return len(session.posts)
}

func (session *Session) Reached() bool {
	return session.done
}
