package http

import (
	"log"
	"net/http"
	"strings"
	"time"

	"appointment-manager/backend/internal/config"
	"appointment-manager/backend/internal/domain/appointment"
	"appointment-manager/backend/internal/domain/availability"
	"appointment-manager/backend/internal/domain/identity"
	"appointment-manager/backend/internal/domain/messaging"
	"appointment-manager/backend/internal/domain/teacherstatus"
	"appointment-manager/backend/internal/guard"
	"appointment-manager/backend/internal/handlers"
	"appointment-manager/backend/internal/httpjson"
	"appointment-manager/backend/internal/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	Cfg            config.Config
	AuthClient     *auth.Client
	Guard          *guard.Guard
	IdentitySvc    *identity.Service
	AvailSvc       *availability.Service
	StatusSvc      *teacherstatus.Service
	AppointmentSvc *appointment.Service
	MessagingSvc   *messaging.Service
	Uploads        *handlers.Uploads
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// Password reset link generation does not need a session. The
	// response never reveals whether the email exists.
	r.Post("/v1/auth/password-reset", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email string `json:"email"`
		}
		if err := httpjson.Read(r, &in); err != nil || strings.TrimSpace(in.Email) == "" {
			Fail(w, 400, "email is required")
			return
		}
		if _, err := d.AuthClient.PasswordResetLink(r.Context(), strings.TrimSpace(in.Email)); err != nil {
			log.Printf("password reset link for %q failed: %v", in.Email, err)
		}
		WriteJSON(w, 200, map[string]any{"ok": true})
	})

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.AuthClient))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			out := map[string]any{"uid": au.UID, "email": au.Email}
			if u, err := d.IdentitySvc.Get(r.Context(), au.UID); err == nil {
				out["profile"] = u
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in identity.RegisterInput
			if err := httpjson.Read(r, &in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			in.Trim()

			out, err := d.IdentitySvc.Register(r.Context(), au.UID, au.Email, in)
			if err != nil {
				status, msg := mapIdentityError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Post("/v1/uploads/signed-url", d.Uploads.CreateAvatarUploadURL)

		// ===== Student area =====
		pr.Group(func(sr chi.Router) {
			sr.Use(d.Guard.Require(identity.RoleStudent))

			sr.Get("/v1/student/teachers", func(w http.ResponseWriter, r *http.Request) {
				q := strings.TrimSpace(r.URL.Query().Get("q"))
				teachers, err := d.IdentitySvc.SearchTeachers(r.Context(), q)
				if err != nil {
					status, msg := mapIdentityError(err)
					Fail(w, status, msg)
					return
				}
				statuses, err := d.StatusSvc.ListAll(r.Context())
				if err != nil {
					Fail(w, 500, "failed to load teacher statuses")
					return
				}
				WriteJSON(w, 200, mergeTeacherStatuses(teachers, statuses))
			})

			sr.Get("/v1/student/teachers/{teacherID}/slots", func(w http.ResponseWriter, r *http.Request) {
				teacherID := chi.URLParam(r, "teacherID")
				out, err := d.AvailSvc.ListSlots(r.Context(), teacherID, true)
				if err != nil {
					status, msg := mapAvailabilityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			sr.Post("/v1/student/appointments", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				var in appointment.BookInput
				if err := httpjson.Read(r, &in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.AppointmentSvc.Book(r.Context(), au.UID, in)
				if err != nil {
					status, msg := mapAppointmentError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 201, out)
			})

			sr.Get("/v1/student/appointments", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				out, err := d.AppointmentSvc.ListForStudent(r.Context(), au.UID)
				if err != nil {
					status, msg := mapAppointmentError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			sr.Post("/v1/student/threads", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				var in struct {
					TeacherID string `json:"teacherId"`
				}
				if err := httpjson.Read(r, &in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.MessagingSvc.Open(r.Context(), au.UID, strings.TrimSpace(in.TeacherID), au.UID)
				if err != nil {
					status, msg := mapMessagingError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			sr.Get("/v1/student/threads", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				out, err := d.MessagingSvc.ListForStudent(r.Context(), au.UID)
				if err != nil {
					status, msg := mapMessagingError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			sr.Get("/v1/student/threads/{threadID}", getThreadHandler(d))
			sr.Post("/v1/student/threads/{threadID}/messages", appendMessageHandler(d))
		})

		// ===== Teacher area =====
		pr.Group(func(tr chi.Router) {
			tr.Use(d.Guard.Require(identity.RoleTeacher))

			tr.Get("/v1/teacher/slots", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				out, err := d.AvailSvc.ListSlots(r.Context(), au.UID, false)
				if err != nil {
					status, msg := mapAvailabilityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			tr.Post("/v1/teacher/slots", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				var in availability.AddSlotInput
				if err := httpjson.Read(r, &in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				in.Trim()

				out, err := d.AvailSvc.AddSlot(r.Context(), au.UID, au.UID, in)
				if err != nil {
					status, msg := mapAvailabilityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 201, out)
			})

			tr.Delete("/v1/teacher/slots/{slotID}", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				slotID := chi.URLParam(r, "slotID")
				if err := d.AvailSvc.RemoveSlot(r.Context(), au.UID, au.UID, slotID); err != nil {
					status, msg := mapAvailabilityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"ok": true})
			})

			tr.Get("/v1/teacher/appointments", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				out, err := d.AppointmentSvc.ListForTeacher(r.Context(), au.UID)
				if err != nil {
					status, msg := mapAppointmentError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			tr.Post("/v1/teacher/appointments/{appointmentID}/approve", decideHandler(d, appointment.ActionApprove))
			tr.Post("/v1/teacher/appointments/{appointmentID}/cancel", decideHandler(d, appointment.ActionCancel))

			tr.Get("/v1/teacher/status", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				out, err := d.StatusSvc.Get(r.Context(), au.UID)
				if err != nil {
					status, msg := mapStatusError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			tr.Patch("/v1/teacher/status", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				var in teacherstatus.UpdateInput
				if err := httpjson.Read(r, &in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.StatusSvc.Set(r.Context(), au.UID, au.UID, in)
				if err != nil {
					status, msg := mapStatusError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			tr.Get("/v1/teacher/threads", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				out, err := d.MessagingSvc.ListForTeacher(r.Context(), au.UID)
				if err != nil {
					status, msg := mapMessagingError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			tr.Get("/v1/teacher/threads/{threadID}", getThreadHandler(d))
			tr.Post("/v1/teacher/threads/{threadID}/messages", appendMessageHandler(d))
		})

		// ===== Admin area =====
		pr.Group(func(ar chi.Router) {
			ar.Use(d.Guard.Require(identity.RoleAdmin))

			ar.Get("/v1/admin/students/pending", func(w http.ResponseWriter, r *http.Request) {
				out, err := d.IdentitySvc.ListPendingStudents(r.Context())
				if err != nil {
					status, msg := mapIdentityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			ar.Post("/v1/admin/students/{uid}/approve", func(w http.ResponseWriter, r *http.Request) {
				out, err := d.IdentitySvc.ApproveStudent(r.Context(), chi.URLParam(r, "uid"))
				if err != nil {
					status, msg := mapIdentityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			ar.Delete("/v1/admin/users/{uid}", func(w http.ResponseWriter, r *http.Request) {
				if err := d.IdentitySvc.Delete(r.Context(), chi.URLParam(r, "uid")); err != nil {
					status, msg := mapIdentityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"ok": true})
			})

			ar.Get("/v1/admin/teachers", func(w http.ResponseWriter, r *http.Request) {
				out, err := d.IdentitySvc.ListTeachers(r.Context())
				if err != nil {
					status, msg := mapIdentityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			ar.Post("/v1/admin/teachers", func(w http.ResponseWriter, r *http.Request) {
				var in identity.TeacherInput
				if err := httpjson.Read(r, &in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				in.Trim()

				out, err := d.IdentitySvc.CreateTeacher(r.Context(), in)
				if err != nil {
					status, msg := mapIdentityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 201, out)
			})

			ar.Patch("/v1/admin/teachers/{uid}", func(w http.ResponseWriter, r *http.Request) {
				var in identity.UpdateTeacherInput
				if err := httpjson.Read(r, &in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				in.Trim()

				out, err := d.IdentitySvc.UpdateTeacher(r.Context(), chi.URLParam(r, "uid"), in)
				if err != nil {
					status, msg := mapIdentityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			ar.Get("/v1/admin/appointments", func(w http.ResponseWriter, r *http.Request) {
				out, err := d.AppointmentSvc.ListAll(r.Context(), 0)
				if err != nil {
					status, msg := mapAppointmentError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			ar.Delete("/v1/admin/appointments/{appointmentID}", func(w http.ResponseWriter, r *http.Request) {
				if err := d.AppointmentSvc.AdminDelete(r.Context(), chi.URLParam(r, "appointmentID")); err != nil {
					status, msg := mapAppointmentError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"ok": true})
			})

			ar.Get("/v1/admin/stats", func(w http.ResponseWriter, r *http.Request) {
				out, err := d.IdentitySvc.Stats(r.Context())
				if err != nil {
					status, msg := mapIdentityError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})
		})
	})

	return r
}

func decideHandler(d RouterDeps, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		id := chi.URLParam(r, "appointmentID")
		out, err := d.AppointmentSvc.Decide(r.Context(), au.UID, id, action)
		if err != nil {
			status, msg := mapAppointmentError(err)
			Fail(w, status, msg)
			return
		}
		WriteJSON(w, 200, out)
	}
}

func getThreadHandler(d RouterDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		out, err := d.MessagingSvc.Get(r.Context(), au.UID, chi.URLParam(r, "threadID"))
		if err != nil {
			status, msg := mapMessagingError(err)
			Fail(w, status, msg)
			return
		}
		WriteJSON(w, 200, out)
	}
}

func appendMessageHandler(d RouterDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())

		var in messaging.AppendInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.MessagingSvc.Append(r.Context(), au.UID, chi.URLParam(r, "threadID"), in)
		if err != nil {
			status, msg := mapMessagingError(err)
			Fail(w, status, msg)
			return
		}
		WriteJSON(w, 201, out)
	}
}

// teacherView is the student-facing teacher listing: identity fields
// merged with the status record the way the dashboard composes them.
type teacherView struct {
	identity.User
	Available bool `json:"available"`
	OnLeave   bool `json:"onLeave"`
}

func mergeTeacherStatuses(teachers []identity.User, statuses []teacherstatus.Status) []teacherView {
	byID := make(map[string]teacherstatus.Status, len(statuses))
	for _, st := range statuses {
		byID[st.TeacherID] = st
	}

	out := make([]teacherView, 0, len(teachers))
	for _, t := range teachers {
		v := teacherView{User: t, Available: true, OnLeave: false}
		if st, ok := byID[t.UID]; ok {
			v.Available = st.Available
			v.OnLeave = st.OnLeave
		}
		out = append(out, v)
	}
	return out
}
