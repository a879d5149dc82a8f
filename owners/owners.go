package owners

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tablebook/db"
	"tablebook/filemgr"
	"tablebook/globals"
	"tablebook/middleware"
	"tablebook/models"
	"tablebook/rdx"
	"tablebook/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

// Register handles POST /api/owners/register. The form carries the owner
// fields, a "restaurant" JSON string, and an optional "image" file.
// Creates the restaurant first, then the owner pointing at it.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	phone := r.FormValue("phone")
	password := r.FormValue("password")

	var restIn struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Contact string `json:"contact"`
	}
	if err := json.Unmarshal([]byte(r.FormValue("restaurant")), &restIn); err != nil {
		http.Error(w, "Invalid restaurant payload", http.StatusBadRequest)
		return
	}

	if name == "" || email == "" || password == "" || restIn.Name == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Check if owner already exists
	err := db.OwnersCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		http.Error(w, "Owner already exists", http.StatusConflict)
		return
	} else if err != mongo.ErrNoDocuments {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var imageName string
	if file, header, ferr := r.FormFile("image"); ferr == nil {
		if !utils.ValidateImageFileType(w, header) {
			return
		}
		imageName, err = filemgr.SaveRestaurantImage(file, header)
		if err != nil {
			log.Printf("Image save failed for %s: %v", email, err)
			http.Error(w, "Failed to save image", http.StatusBadRequest)
			return
		}
	}

	restaurant := models.Restaurant{
		RestaurantID: "r" + utils.GenerateRandomDigitString(12),
		Name:         restIn.Name,
		Address:      restIn.Address,
		Contact:      restIn.Contact,
		Image:        imageName,
		CreatedAt:    time.Now(),
	}
	if _, err := db.RestaurantsCollection.InsertOne(ctx, restaurant); err != nil {
		http.Error(w, "Error registering owner & restaurant", http.StatusInternalServerError)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", email, err)
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	owner := models.Owner{
		OwnerID:      "o" + utils.GenerateRandomDigitString(12),
		Name:         name,
		Email:        email,
		Phone:        phone,
		Password:     string(hashedPassword),
		RestaurantID: restaurant.RestaurantID,
		CreatedAt:    time.Now(),
	}
	if _, err := db.OwnersCollection.InsertOne(ctx, owner); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			http.Error(w, "Owner already exists", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to register owner", http.StatusInternalServerError)
		return
	}

	// listing cache is stale now
	if _, err := rdx.RdxDel("restaurants"); err != nil {
		log.Printf("Cache invalidation failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success":    true,
		"message":    "Restaurant and owner registered successfully",
		"owner":      owner,
		"restaurant": restaurant,
	})
}

// Login handles POST /api/owners/login and issues a bearer token carrying
// the owner's restaurant id.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var owner models.Owner
	err := db.OwnersCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&owner)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(input.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	claims := &middleware.Claims{
		OwnerID:      owner.OwnerID,
		RestaurantID: owner.RestaurantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Login successful",
		"token":   tokenString,
		"owner": utils.M{
			"id":           owner.OwnerID,
			"name":         owner.Name,
			"email":        owner.Email,
			"restaurantId": owner.RestaurantID,
		},
	})
}
