package domain

import "sort"

// RefSnapshot is the state of tags, branches and HEAD read at the start of a run.
// It is never mutated after construction; WithTag and WithBranch return copies.
type RefSnapshot struct {
	tags     map[string]string
	branches map[string]string
	head     string

	tagsByCommit     map[string][]string
	branchesByCommit map[string][]string
}

// NewRefSnapshot builds a snapshot from tag and branch mappings (name -> commit id).
// head is empty when the repository has no commits.
func NewRefSnapshot(tags, branches map[string]string, head string) *RefSnapshot {
	s := &RefSnapshot{
		tags:     make(map[string]string, len(tags)),
		branches: make(map[string]string, len(branches)),
		head:     head,
	}
	for name, commit := range tags {
		s.tags[name] = commit
	}
	for name, commit := range branches {
		s.branches[name] = commit
	}
	s.tagsByCommit = invert(s.tags)
	s.branchesByCommit = invert(s.branches)
	return s
}

func invert(m map[string]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for name, commit := range m {
		out[commit] = append(out[commit], name)
	}
	for commit := range out {
		sort.Strings(out[commit])
	}
	return out
}

// Head returns the commit HEAD points to, or "" for an unborn HEAD.
func (s *RefSnapshot) Head() string {
	return s.head
}

// HasTag reports whether a tag with the given name exists.
func (s *RefSnapshot) HasTag(name string) bool {
	_, ok := s.tags[name]
	return ok
}

// Tag returns the commit a tag points to.
func (s *RefSnapshot) Tag(name string) (string, bool) {
	commit, ok := s.tags[name]
	return commit, ok
}

// Branch returns the commit a branch points to.
func (s *RefSnapshot) Branch(name string) (string, bool) {
	commit, ok := s.branches[name]
	return commit, ok
}

// TagsAt returns the sorted names of all tags pointing at commit.
func (s *RefSnapshot) TagsAt(commit string) []string {
	return s.tagsByCommit[commit]
}

// BranchesAt returns the sorted names of all branches pointing at commit.
func (s *RefSnapshot) BranchesAt(commit string) []string {
	return s.branchesByCommit[commit]
}

// TagCount returns the number of tags in the snapshot.
func (s *RefSnapshot) TagCount() int {
	return len(s.tags)
}

// BranchCount returns the number of branches in the snapshot.
func (s *RefSnapshot) BranchCount() int {
	return len(s.branches)
}

// WithTag returns a copy of the snapshot with an additional tag.
func (s *RefSnapshot) WithTag(name, commit string) *RefSnapshot {
	tags := make(map[string]string, len(s.tags)+1)
	for k, v := range s.tags {
		tags[k] = v
	}
	tags[name] = commit
	return NewRefSnapshot(tags, s.branches, s.head)
}

// WithBranch returns a copy of the snapshot with a branch created or moved.
func (s *RefSnapshot) WithBranch(name, commit string) *RefSnapshot {
	branches := make(map[string]string, len(s.branches)+1)
	for k, v := range s.branches {
		branches[k] = v
	}
	branches[name] = commit
	return NewRefSnapshot(s.tags, branches, s.head)
}
