package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/integrators"
	"github.com/san-kum/springcurve/internal/physics"
)

var _ = Describe("Scene lifecycle", func() {
	var (
		scene *Scene
		integ integrators.Integrator
	)

	BeforeEach(func() {
		scene = NewScene(DefaultGeometry(), physics.NewBounds())
		integ = integrators.NewEuler(physics.NewSpring())
	})

	It("starts uninitialized", func() {
		Expect(scene.Initialized()).To(BeFalse())
	})

	Context("after the first resize", func() {
		BeforeEach(func() {
			Expect(scene.Resize(800, 600)).To(Succeed())
		})

		It("centers the endpoints vertically at the inset", func() {
			Expect(scene.P0).To(Equal(dynamo.V(150, 300)))
			Expect(scene.P3).To(Equal(dynamo.V(650, 300)))
		})

		It("does not reset moved interior points on later resizes", func() {
			scene.PointerMove(600, 150)
			for i := 0; i < 90; i++ {
				scene.Step(integ)
			}
			moved := scene.Points

			Expect(scene.Resize(1024, 768)).To(Succeed())
			Expect(scene.Resize(640, 480)).To(Succeed())

			Expect(scene.Points[0].Pos).To(Equal(moved[0].Pos))
			Expect(scene.Points[1].Pos).To(Equal(moved[1].Pos))
			Expect(scene.P3).To(Equal(dynamo.V(490, 240)))
		})

		It("pulls interior points toward the pointer", func() {
			scene.PointerMove(400, 150)
			start := scene.Points[0].Pos.Sub(scene.Targets[0]).Len()
			for i := 0; i < 30; i++ {
				scene.Step(integ)
			}
			Expect(scene.Points[0].Pos.Sub(scene.Targets[0]).Len()).To(BeNumerically("<", start))
		})

		It("keeps interior points near the visible area", func() {
			scene.PointerMove(0, 0)
			for i := 0; i < 600; i++ {
				scene.Step(integ)
				Expect(scene.Valid()).To(BeTrue())
			}
			for _, p := range scene.Points {
				Expect(p.Pos.X).To(BeNumerically(">", -80))
				Expect(p.Pos.Y).To(BeNumerically(">", 0))
			}
		})
	})
})
