// set-role stamps a role onto an existing Firebase user. It is how the
// first admin gets bootstrapped; admins cannot self-register.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
)

func main() {
	uid := flag.String("uid", "", "target firebase uid")
	role := flag.String("role", "", "role to assign: student, teacher or admin")
	email := flag.String("email", "", "email to store on the user document (optional)")
	flag.Parse()
	if *uid == "" {
		log.Fatal("uid is required: -uid=xxxxx")
	}
	switch *role {
	case "student", "teacher", "admin":
	default:
		log.Fatal("role must be student, teacher or admin")
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("app.Auth: %v", err)
	}
	fs, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("app.Firestore: %v", err)
	}
	defer fs.Close()

	claims := map[string]interface{}{
		"role": *role,
	}
	if err := authClient.SetCustomUserClaims(ctx, *uid, claims); err != nil {
		log.Fatalf("SetCustomUserClaims: %v", err)
	}

	doc := map[string]interface{}{
		"uid":       *uid,
		"role":      *role,
		"approved":  true,
		"updatedAt": time.Now().UTC(),
	}
	if *email != "" {
		doc["email"] = *email
	}
	if _, err := fs.Collection("users").Doc(*uid).Set(ctx, doc, firestore.MergeAll); err != nil {
		log.Fatalf("users doc update: %v", err)
	}

	fmt.Printf("ok: role %q set for %s\n", *role, *uid)
}
