// internal/stage/stage.go
package stage

import (
	"fmt"
	"log/slog"
	"math"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/interfaces"
)

const (
	Count = 5

	stage2Distance = 90
	stage3Flights  = 10
	stage3Average  = 80
	stage5Flights  = 16
)

// Intros are shown when a stage begins.
var Intros = [Count]string{
	"Stage 1: get used to the game! Set angle, power and balance and throw the airplane.",
	"Stage 2: the distance challenge! Throw the airplane 90m or further.",
	"Stage 3: prove your consistency! Use a loop to throw 10 times and average 80m or more.",
	"Stage 4: catch your luck! Throw repeatedly with a loop until a bird carries the airplane away.",
	"Stage 5: the programmer's path! Vary the parameters inside a loop and throw 16 times.",
}

// Progress — счётчики одной ступени.
type Progress struct {
	Completed     bool
	Attempts      int
	BestDistance  int
	TotalDistance int
	Distances     []int
}

// Evaluator tracks stage mode. In free mode results are ignored.
type Evaluator struct {
	loop            interfaces.LoopControl
	log             *slog.Logger
	eventDispatcher *event.Dispatcher

	active   bool
	current  int
	progress [Count]Progress
}

// NewEvaluator subscribes to landings. loop may be nil when no runner exists.
func NewEvaluator(loop interfaces.LoopControl, log *slog.Logger, eventDispatcher *event.Dispatcher) *Evaluator {
	e := &Evaluator{loop: loop, log: log, eventDispatcher: eventDispatcher, current: 1}
	eventDispatcher.Subscribe(event.FlightLanded, e)
	return e
}

// Start enters stage mode from stage 1 with fresh progress.
func (e *Evaluator) Start() string {
	e.active = true
	e.current = 1
	e.progress = [Count]Progress{}
	e.log.Info("stage mode started")
	return Intros[0]
}

// StopStages returns to free mode.
func (e *Evaluator) StopStages() {
	e.active = false
	e.log.Info("free mode")
}

func (e *Evaluator) Active() bool {
	return e.active
}

// Current is the 1-based stage in play.
func (e *Evaluator) Current() int {
	return e.current
}

func (e *Evaluator) Progress(stage int) Progress {
	if stage < 1 || stage > Count {
		return Progress{}
	}
	return e.progress[stage-1]
}

// Skip moves to the next stage without recording a clear. Skipping the last
// stage ends stage mode.
func (e *Evaluator) Skip() (string, bool) {
	if !e.active {
		return "", false
	}
	if e.current >= Count {
		e.active = false
		e.current = 1
		return "All stages skipped, back to free mode.", true
	}
	e.current++
	return Intros[e.current-1], true
}

func (e *Evaluator) OnEvent(ev event.Event) {
	data, ok := ev.Data.(event.LandedData)
	if ev.Type != event.FlightLanded || !ok {
		return
	}
	looping := e.loop != nil && e.loop.Looping()
	if cleared, ok := e.Record(data.Result, looping); ok {
		e.eventDispatcher.Dispatch(event.Event{Type: event.StageCleared, Data: cleared})
	}
}

// Record applies one completed flight to the current stage and reports a clear.
// A clear during a loop stops the loop.
func (e *Evaluator) Record(r component.FlightResult, looping bool) (event.StageData, bool) {
	if !e.active {
		return event.StageData{}, false
	}
	stage := e.current
	p := &e.progress[stage-1]
	distance := r.DistanceMeters
	var message string

	switch stage {
	case 1:
		message = "Stage 1 cleared! You know the basic controls."
	case 2:
		p.BestDistance = max(p.BestDistance, distance)
		if distance >= stage2Distance {
			message = fmt.Sprintf("Stage 2 cleared! You flew %dm.", distance)
		}
	case 3:
		if !looping {
			break
		}
		p.Attempts++
		p.TotalDistance += distance
		if p.Attempts < stage3Flights {
			break
		}
		average := float64(p.TotalDistance) / float64(p.Attempts)
		if average >= stage3Average {
			message = fmt.Sprintf("Stage 3 cleared! Average over %d flights: %dm.", p.Attempts, int(math.Round(average)))
		} else {
			e.log.Info("stage 3 attempt failed, starting over", "average", average)
			p.Attempts, p.TotalDistance = 0, 0
		}
	case 4:
		if looping {
			p.Attempts++
		}
		if r.Event == component.EventBirdCarry {
			message = "Stage 4 cleared! A bird carried the airplane away."
		}
	case 5:
		if !looping {
			break
		}
		p.Attempts++
		p.Distances = append(p.Distances, distance)
		if p.Attempts >= stage5Flights {
			total := 0
			for _, d := range p.Distances {
				total += d
			}
			message = fmt.Sprintf("Stage 5 cleared! Average distance: %dm.",
				int(math.Round(float64(total)/float64(len(p.Distances)))))
		}
	}
	if message == "" {
		return event.StageData{}, false
	}
	return e.clear(stage, message, looping), true
}

func (e *Evaluator) clear(stage int, message string, looping bool) event.StageData {
	e.progress[stage-1].Completed = true
	data := event.StageData{Stage: stage, Message: message}
	if looping && e.loop != nil {
		e.loop.Stop(fmt.Sprintf("stage %d cleared", stage))
		data.LoopStopped = true
		data.Message += " The loop was stopped."
	}
	if stage == Count {
		data.AllCleared = true
		data.Message += " Every stage is cleared!"
		e.active = false
		e.current = 1
	} else {
		e.current = stage + 1
	}
	e.log.Info("stage cleared", "stage", stage, "loopStopped", data.LoopStopped)
	return data
}
