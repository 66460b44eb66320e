package services

import (
	"log"

	"github.com/academix/academix-api/internal/config"
	"github.com/academix/academix-api/internal/models"
	"github.com/meilisearch/meilisearch-go"
)

type SearchService struct {
	client *meilisearch.Client
}

func NewSearchService(cfg *config.Config) *SearchService {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeiliURL,
		APIKey: cfg.MeiliAPIKey,
	})

	// Ensure courses index exists (best effort)
	_, err := client.GetIndex("courses")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "courses",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch courses index: %v", err)
		}

		_, err = client.Index("courses").UpdateFilterableAttributes(&[]string{"program_id", "semester", "code"})
		if err != nil {
			log.Printf("Failed to update courses filterable attributes: %v", err)
		}

		_, err = client.Index("courses").UpdateSortableAttributes(&[]string{"name", "code", "created_at"})
		if err != nil {
			log.Printf("Failed to update courses sortable attributes: %v", err)
		}

		_, err = client.Index("courses").UpdateSearchableAttributes(&[]string{"name", "code", "description", "syllabus_text"})
		if err != nil {
			log.Printf("Failed to update courses searchable attributes: %v", err)
		}
	}

	// Ensure students index exists (best effort)
	_, err = client.GetIndex("students")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "students",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch students index: %v", err)
		}

		_, err = client.Index("students").UpdateFilterableAttributes(&[]string{"program_id", "cohort_year"})
		if err != nil {
			log.Printf("Failed to update students filterable attributes: %v", err)
		}

		_, err = client.Index("students").UpdateSearchableAttributes(&[]string{"first_name", "last_name", "email", "student_number"})
		if err != nil {
			log.Printf("Failed to update students searchable attributes: %v", err)
		}
	}

	return &SearchService{client: client}
}

// CourseDocument is the course projection stored in the search index.
// SyllabusText carries the extracted text of the uploaded syllabus so
// full-text search reaches into the file contents.
type CourseDocument struct {
	ID           string `json:"id"`
	ProgramID    string `json:"program_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Semester     int    `json:"semester"`
	SyllabusText string `json:"syllabus_text,omitempty"`
}

func NewCourseDocument(course models.Course, syllabusText string) CourseDocument {
	return CourseDocument{
		ID:           course.ID.String(),
		ProgramID:    course.ProgramID.String(),
		Code:         course.Code,
		Name:         course.Name,
		Description:  course.Description,
		Semester:     course.Semester,
		SyllabusText: syllabusText,
	}
}

func (s *SearchService) IndexCourse(doc CourseDocument) error {
	_, err := s.client.Index("courses").AddDocuments([]CourseDocument{doc})
	return err
}

func (s *SearchService) IndexCourses(docs []CourseDocument) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := s.client.Index("courses").AddDocuments(docs)
	return err
}

func (s *SearchService) DeleteCourse(courseID string) error {
	_, err := s.client.Index("courses").DeleteDocument(courseID)
	return err
}

func (s *SearchService) SearchCourses(query string, programID string) (*meilisearch.SearchResponse, error) {
	request := &meilisearch.SearchRequest{
		Limit: 50,
	}

	if programID != "" {
		request.Filter = "program_id = " + programID
	}

	return s.client.Index("courses").Search(query, request)
}

// StudentDocument is the student projection stored in the search index.
type StudentDocument struct {
	ID            string `json:"id"`
	StudentNumber string `json:"student_number"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	ProgramID     string `json:"program_id,omitempty"`
	CohortYear    int    `json:"cohort_year"`
}

func NewStudentDocument(student models.Student) StudentDocument {
	doc := StudentDocument{
		ID:            student.ID.String(),
		StudentNumber: student.StudentNumber,
		FirstName:     student.FirstName,
		LastName:      student.LastName,
		Email:         student.Email,
		CohortYear:    student.CohortYear,
	}
	if student.ProgramID != nil {
		doc.ProgramID = student.ProgramID.String()
	}
	return doc
}

func (s *SearchService) IndexStudent(doc StudentDocument) error {
	_, err := s.client.Index("students").AddDocuments([]StudentDocument{doc})
	return err
}

func (s *SearchService) IndexStudents(docs []StudentDocument) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := s.client.Index("students").AddDocuments(docs)
	return err
}

func (s *SearchService) DeleteStudent(studentID string) error {
	_, err := s.client.Index("students").DeleteDocument(studentID)
	return err
}

func (s *SearchService) SearchStudents(query string, programID string) (*meilisearch.SearchResponse, error) {
	request := &meilisearch.SearchRequest{
		Limit: 50,
	}

	if programID != "" {
		request.Filter = "program_id = " + programID
	}

	return s.client.Index("students").Search(query, request)
}

func (s *SearchService) GetCourseCount() (int64, error) {
	stats, err := s.client.Index("courses").GetStats()
	if err != nil {
		return 0, err
	}
	return stats.NumberOfDocuments, nil
}

func (s *SearchService) GetStudentCount() (int64, error) {
	stats, err := s.client.Index("students").GetStats()
	if err != nil {
		return 0, err
	}
	return stats.NumberOfDocuments, nil
}
