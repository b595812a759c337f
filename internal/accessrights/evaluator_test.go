package accessrights_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unilanding/cms-backend/internal/accessrights"
)

var _ = Describe("Evaluate", func() {
	grantsFor := func(module string, flags accessrights.Flags) accessrights.Grant {
		return accessrights.Grant{
			ModuleName: module,
			CanCreate:  flags.CanCreate,
			CanRead:    flags.CanRead,
			CanUpdate:  flags.CanUpdate,
			CanDelete:  flags.CanDelete,
		}
	}

	Context("with an empty requirement list", func() {
		It("allows regardless of grants", func() {
			decision := accessrights.Evaluate(nil, nil)

			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Missing).To(BeEmpty())
		})
	})

	Context("when every requirement is satisfied", func() {
		It("allows", func() {
			grants := []accessrights.Grant{
				grantsFor("Blog", accessrights.Flags{CanCreate: true, CanRead: true}),
				grantsFor("Images", accessrights.Flags{CanRead: true}),
			}

			decision := accessrights.Evaluate(grants, []accessrights.Requirement{
				accessrights.Req("Blog", accessrights.CanCreate),
				accessrights.Req("Images", accessrights.CanRead),
			})

			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Missing).To(BeEmpty())
		})
	})

	Context("when a grant row exists but the boolean is false", func() {
		It("denies and reports the pair as missing", func() {
			grants := []accessrights.Grant{
				grantsFor("Blog", accessrights.Flags{CanRead: true}),
			}

			decision := accessrights.Evaluate(grants, []accessrights.Requirement{
				accessrights.Req("Blog", accessrights.CanDelete),
			})

			Expect(decision.Allowed).To(BeFalse())
			Expect(decision.Missing).To(ConsistOf(
				accessrights.Req("Blog", accessrights.CanDelete)))
		})
	})

	Context("when no grant row exists for the module", func() {
		It("denies the same way as a false flag", func() {
			decision := accessrights.Evaluate(nil, []accessrights.Requirement{
				accessrights.Req("Puck", accessrights.CanUpdate),
			})

			Expect(decision.Allowed).To(BeFalse())
			Expect(decision.Missing).To(ConsistOf(
				accessrights.Req("Puck", accessrights.CanUpdate)))
		})
	})

	Context("with several unsatisfied requirements", func() {
		It("collects every missing pair, not just the first", func() {
			grants := []accessrights.Grant{
				grantsFor("Blog", accessrights.Flags{CanRead: true}),
			}

			decision := accessrights.Evaluate(grants, []accessrights.Requirement{
				accessrights.Req("Blog", accessrights.CanRead),
				accessrights.Req("Blog", accessrights.CanUpdate),
				accessrights.Req("Images", accessrights.CanDelete),
			})

			Expect(decision.Allowed).To(BeFalse())
			Expect(decision.Missing).To(Equal([]accessrights.Requirement{
				accessrights.Req("Blog", accessrights.CanUpdate),
				accessrights.Req("Images", accessrights.CanDelete),
			}))
		})
	})

	Describe("Requirement formatting", func() {
		It("renders as Module.permission", func() {
			req := accessrights.Req("Templates", accessrights.CanCreate)
			Expect(req.String()).To(Equal("Templates.canCreate"))
		})
	})
})
