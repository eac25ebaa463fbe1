package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

const (
	petsCollection        = "pets"
	animalTypesCollection = "animal_types"
)

type PetRepository struct {
	pets  *mongo.Collection
	types *mongo.Collection
}

func NewPetRepository(db *mongo.Database) *PetRepository {
	return &PetRepository{
		pets:  db.Collection(petsCollection),
		types: db.Collection(animalTypesCollection),
	}
}

type mongoPet struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	SpeciesID    string             `bson:"species"`
	Breed        string             `bson:"breed,omitempty"`
	BirthDate    *time.Time         `bson:"birth_date,omitempty"`
	WeightKg     float64            `bson:"weight,omitempty"`
	ImageURL     string             `bson:"image_url,omitempty"`
	SpecialNotes string             `bson:"special_notes,omitempty"`
	OwnerID      primitive.ObjectID `bson:"user_id"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

type mongoAnimalType struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Name   string             `bson:"name"`
	Active bool               `bson:"is_active"`
}

func (r *PetRepository) Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	doc, err := petToDoc(pet)
	if err != nil {
		return nil, err
	}

	res, err := r.pets.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert pet: %w", err)
	}

	created := *pet
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PetRepository) FindByID(ctx context.Context, id string) (*domain.Pet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPetNotFound
	}

	var mp mongoPet
	if err := r.pets.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPetNotFound
		}
		return nil, fmt.Errorf("find pet: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PetRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	uid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	cur, err := r.pets.Find(ctx, bson.M{"user_id": uid})
	if err != nil {
		return nil, fmt.Errorf("find pets: %w", err)
	}
	defer cur.Close(ctx)

	var pets []domain.Pet
	for cur.Next(ctx) {
		var mp mongoPet
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode pet: %w", err)
		}
		pets = append(pets, *mp.toDomain())
	}
	return pets, cur.Err()
}

func (r *PetRepository) Update(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	oid, err := primitive.ObjectIDFromHex(pet.ID)
	if err != nil {
		return nil, domain.ErrPetNotFound
	}

	doc, err := petToDoc(pet)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.pets.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update pet: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPetNotFound
	}
	return pet, nil
}

func (r *PetRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPetNotFound
	}

	res, err := r.pets.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPetNotFound
	}
	return nil
}

func (r *PetRepository) ListAnimalTypes(ctx context.Context) ([]domain.AnimalType, error) {
	cur, err := r.types.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("find animal types: %w", err)
	}
	defer cur.Close(ctx)

	var types []domain.AnimalType
	for cur.Next(ctx) {
		var mt mongoAnimalType
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode animal type: %w", err)
		}
		types = append(types, domain.AnimalType{ID: mt.ID.Hex(), Name: mt.Name, Active: mt.Active})
	}
	return types, cur.Err()
}

func petToDoc(pet *domain.Pet) (mongoPet, error) {
	uid, err := primitive.ObjectIDFromHex(pet.OwnerID)
	if err != nil {
		return mongoPet{}, domain.ErrUserNotFound
	}
	return mongoPet{
		Name:         pet.Name,
		SpeciesID:    pet.SpeciesID,
		Breed:        pet.Breed,
		BirthDate:    pet.BirthDate,
		WeightKg:     pet.WeightKg,
		ImageURL:     pet.ImageURL,
		SpecialNotes: pet.SpecialNotes,
		OwnerID:      uid,
		CreatedAt:    pet.CreatedAt.Unix(),
		UpdatedAt:    pet.UpdatedAt.Unix(),
	}, nil
}

func (mp mongoPet) toDomain() *domain.Pet {
	return &domain.Pet{
		ID:           mp.ID.Hex(),
		Name:         mp.Name,
		SpeciesID:    mp.SpeciesID,
		Breed:        mp.Breed,
		BirthDate:    mp.BirthDate,
		WeightKg:     mp.WeightKg,
		ImageURL:     mp.ImageURL,
		SpecialNotes: mp.SpecialNotes,
		OwnerID:      mp.OwnerID.Hex(),
		CreatedAt:    unixToTime(mp.CreatedAt),
		UpdatedAt:    unixToTime(mp.UpdatedAt),
	}
}
