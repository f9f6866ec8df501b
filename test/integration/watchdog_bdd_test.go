//go:build integration

package integration

import (
	"context"
	"os/exec"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/imaniceman/dwm-monitor/internal/domain"
	"github.com/imaniceman/dwm-monitor/internal/infra"
	"github.com/imaniceman/dwm-monitor/internal/monitor"
)

// These specs run against the live OS process table, using `sleep` as a
// stand-in target. Unix only; they kill every `sleep` on the machine.
var _ = Describe("Process inspection", func() {
	var (
		inspector domain.ProcessInspector
		spawnedMu sync.Mutex
		spawned   []*exec.Cmd
	)

	spawnSleep := func() *exec.Cmd {
		cmd := exec.Command("sleep", "60")
		Expect(cmd.Start()).To(Succeed())
		spawnedMu.Lock()
		spawned = append(spawned, cmd)
		spawnedMu.Unlock()
		return cmd
	}

	findTarget := func(name string) *domain.TargetProcess {
		target, err := inspector.FindTarget(name)
		Expect(err).NotTo(HaveOccurred())
		return target
	}

	BeforeEach(func() {
		inspector = infra.NewProcessInspector()
		spawned = nil
	})

	AfterEach(func() {
		spawnedMu.Lock()
		defer spawnedMu.Unlock()
		for _, cmd := range spawned {
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
				_, _ = cmd.Process.Wait()
			}
		}
	})

	Describe("FindTarget", func() {
		Context("when the target process is running", func() {
			It("finds it by exact name regardless of case", func() {
				spawnSleep()

				Eventually(func() *domain.TargetProcess {
					return findTarget("SLEEP")
				}, 2*time.Second, 50*time.Millisecond).ShouldNot(BeNil())
			})
		})

		Context("when no process matches", func() {
			It("returns nil without error", func() {
				Expect(findTarget("no-such-process-zzz.exe")).To(BeNil())
			})
		})
	})

	Describe("MemoryUsage", func() {
		It("reports a nonzero resident footprint for a live target", func() {
			spawnSleep()

			var target *domain.TargetProcess
			Eventually(func() *domain.TargetProcess {
				target = findTarget("sleep")
				return target
			}, 2*time.Second, 50*time.Millisecond).ShouldNot(BeNil())

			usage, err := inspector.MemoryUsage(target.PID)
			Expect(err).NotTo(HaveOccurred())
			Expect(usage).To(BeNumerically(">", 0))
		})
	})

	Describe("TerminateAll", func() {
		It("kills every process matching the image name", func() {
			spawnSleep()
			spawnSleep()

			terminator := infra.NewProcessTerminator()
			Expect(terminator.TerminateAll("sleep")).To(Succeed())

			Eventually(func() *domain.TargetProcess {
				return findTarget("sleep")
			}, 2*time.Second, 50*time.Millisecond).Should(BeNil())
		})
	})

	Describe("Recovery", func() {
		Context("when the target is relaunched shortly after termination", func() {
			It("confirms the restart", func() {
				spawnSleep()

				// Simulate the OS supervisor relaunching the target.
				go func() {
					defer GinkgoRecover()
					time.Sleep(300 * time.Millisecond)
					spawnSleep()
				}()

				recoverer := monitor.NewRecovery(
					monitor.RecoveryConfig{
						GracePeriod:   50 * time.Millisecond,
						RetryInterval: 50 * time.Millisecond,
					},
					inspector,
					infra.NewProcessTerminator(),
					"sleep",
					zap.NewNop(),
				)

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				done := make(chan error, 1)
				go func() {
					defer GinkgoRecover()
					done <- recoverer.TerminateAndConfirm(ctx)
				}()

				Eventually(done, 5*time.Second).Should(Receive(BeNil()))
			})
		})
	})
})
