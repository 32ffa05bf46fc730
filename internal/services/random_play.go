package services

import (
	"errors"
	"math/rand"

	"github.com/josetomecore/P6-Quiz/internal/models"
)

var (
	ErrNoQuizzes  = errors.New("there are no quizzes to play")
	ErrNotPlaying = errors.New("no random play in progress")
)

// GameState is the random-play game kept in a user's session. Pool holds
// the ids of the quizzes not yet answered; quizzes are fetched per turn.
type GameState struct {
	Pool  []uint
	Index int
	Score int
}

func (g *GameState) Started() bool {
	return g != nil && len(g.Pool) > 0
}

func (g *GameState) drop(idx int) {
	g.Pool = append(g.Pool[:idx:idx], g.Pool[idx+1:]...)
}

type QuizSource interface {
	ListQuizIDs() ([]uint, error)
	GetQuiz(quizID uint) (*models.Quiz, error)
}

type Turn struct {
	Quiz  models.Quiz
	Score int
}

type Outcome struct {
	Result    bool
	Score     int
	Answer    string
	Exhausted bool
}

type RandomPlayService struct {
	quizzes QuizSource
	intn    func(n int) int
}

func NewRandomPlayService(quizzes QuizSource) *RandomPlayService {
	return &RandomPlayService{quizzes: quizzes, intn: rand.Intn}
}

// WithRand replaces the index source, intn must return a value in [0, n).
func (s *RandomPlayService) WithRand(intn func(n int) int) *RandomPlayService {
	s.intn = intn
	return s
}

// Play starts a game when the state holds no pool and draws a new index
// into the remaining pool. Ids of quizzes deleted since the pool was
// loaded are dropped; a pool emptied that way starts over.
func (s *RandomPlayService) Play(state *GameState) (*Turn, error) {
	for restarts := 0; restarts < 2; restarts++ {
		if !state.Started() {
			if err := s.reset(state); err != nil {
				return nil, err
			}
			if !state.Started() {
				return nil, ErrNoQuizzes
			}
		}

		for state.Started() {
			state.Index = s.intn(len(state.Pool))
			quiz, err := s.quizzes.GetQuiz(state.Pool[state.Index])
			if errors.Is(err, ErrNotFound) {
				state.drop(state.Index)
				continue
			}
			if err != nil {
				return nil, err
			}
			return &Turn{Quiz: *quiz, Score: state.Score}, nil
		}
	}
	return nil, ErrNoQuizzes
}

// Check compares answer with the current quiz by exact equality. A wrong
// answer, or the last quiz answered right, reloads the full pool with
// score 0; the outcome carries the score reached before the reset.
func (s *RandomPlayService) Check(state *GameState, answer string) (*Outcome, error) {
	if !state.Started() || state.Index < 0 || state.Index >= len(state.Pool) {
		return nil, ErrNotPlaying
	}

	current, err := s.quizzes.GetQuiz(state.Pool[state.Index])
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotPlaying
	}
	if err != nil {
		return nil, err
	}

	if answer != current.Answer {
		final := state.Score
		if err := s.reset(state); err != nil {
			return nil, err
		}
		return &Outcome{Result: false, Score: final, Answer: answer}, nil
	}

	state.Score++
	state.drop(state.Index)

	if !state.Started() {
		final := state.Score
		if err := s.reset(state); err != nil {
			return nil, err
		}
		return &Outcome{Result: true, Score: final, Answer: answer, Exhausted: true}, nil
	}

	return &Outcome{Result: true, Score: state.Score, Answer: answer}, nil
}

func (s *RandomPlayService) reset(state *GameState) error {
	ids, err := s.quizzes.ListQuizIDs()
	if err != nil {
		return err
	}
	state.Pool = ids
	state.Index = 0
	state.Score = 0
	return nil
}
