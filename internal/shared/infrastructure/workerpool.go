package infrastructure

import (
	"context"
	"fmt"
	"sync"
)

// Task représente une unité de travail exécutée par le pool
type Task func() error

// WorkerPool borne le parallélisme des traitements par lots du moteur
// de rapport: les exports soumettent un lot de lignes par tâche plutôt
// que de lancer une goroutine par ligne.
type WorkerPool struct {
	workerCount int
	tasks       chan Task
	errors      chan error
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerPool crée un pool de workerCount workers. La file de tâches
// est bornée: un producteur qui soumet plus vite que les workers ne
// consomment se retrouve ralenti au lieu d'empiler en mémoire.
func NewWorkerPool(workerCount int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workerCount: workerCount,
		tasks:       make(chan Task, workerCount*2),
		errors:      make(chan error, workerCount),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// worker consomme les tâches jusqu'à fermeture de la file ou arrêt
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}
			if err := task(); err != nil {
				select {
				case wp.errors <- err:
				default:
					// Canal d'erreurs plein, on ignore
				}
			}
		}
	}
}

// Start démarre les workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit soumet une tâche au pool
func (wp *WorkerPool) Submit(task Task) error {
	select {
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool is stopped")
	case wp.tasks <- task:
		return nil
	}
}

// MapBatches applique fn à chaque indice de [0, count) en découpant la
// plage en lots de batchSize soumis au pool, et ne rend la main qu'une
// fois tous les lots traités. Les lots couvrent des indices disjoints:
// l'appelant peut écrire dans une slice pré-allouée sans verrou. Un lot
// refusé par un pool arrêté s'exécute dans la goroutine appelante, le
// résultat reste complet.
func (wp *WorkerPool) MapBatches(count, batchSize int, fn func(i int)) {
	if batchSize <= 0 {
		batchSize = 1
	}

	var pending sync.WaitGroup
	for start := 0; start < count; start += batchSize {
		end := start + batchSize
		if end > count {
			end = count
		}

		from, to := start, end
		pending.Add(1)
		task := func() error {
			defer pending.Done()
			for i := from; i < to; i++ {
				fn(i)
			}
			return nil
		}

		if err := wp.Submit(task); err != nil {
			task()
		}
	}

	pending.Wait()
}

// Wait attend que toutes les tâches soient terminées et ferme la file
func (wp *WorkerPool) Wait() {
	close(wp.tasks)
	wp.wg.Wait()
}

// Stop arrête le pool immédiatement
func (wp *WorkerPool) Stop() {
	wp.cancel()
	wp.wg.Wait()
}

// Errors retourne le canal d'erreurs
func (wp *WorkerPool) Errors() <-chan error {
	return wp.errors
}
