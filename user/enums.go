/*
 * Copyright 2026 yeonilabs.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package user

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/yeonilabs/yeoni/types"
)

// Enum columns store the code string (types.BaseEnum String value); the zero
// value of every enum is "unspecified" and round-trips as SQL NULL. Parse
// functions accept the stored code, ParseXKorean variants additionally accept
// the Korean labels collected from intake forms.

func enumCode[E comparable](codes map[E]string, value E) string {
	if code, ok := codes[value]; ok {
		return code
	}
	return types.IllegalName
}

func enumDesc[E comparable](descs map[E]string, value E) string {
	if desc, ok := descs[value]; ok {
		return desc
	}
	return types.IllegalDesc
}

func parseEnumCode[E comparable](codes map[E]string, code string) (E, bool) {
	for value, c := range codes {
		if c == code {
			return value, true
		}
	}
	var zero E
	return zero, false
}

func enumValue[E comparable](codes map[E]string, value E) (driver.Value, error) {
	if code, ok := codes[value]; ok {
		return code, nil
	}
	return nil, nil
}

func scanEnumSource(value interface{}) (string, bool, error) {
	switch v := value.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case []byte:
		return string(v), true, nil
	}
	return "", false, fmt.Errorf("enum column must scan from string, got %T", value)
}

// AuthType identifies the authentication provider an account was created with.
type AuthType int

const (
	AuthUnspecified AuthType = iota
	AuthNaver
	AuthKakao
	AuthGmail
	AuthPhone
	AuthApple
	AuthEmail
)

var authTypeCodes = map[AuthType]string{
	AuthNaver: "naver",
	AuthKakao: "kakao",
	AuthGmail: "gmail",
	AuthPhone: "phone",
	AuthApple: "apple",
	AuthEmail: "email",
}

var authTypeDescs = map[AuthType]string{
	AuthNaver: "네이버",
	AuthKakao: "카카오",
	AuthGmail: "구글",
	AuthPhone: "휴대폰",
	AuthApple: "애플",
	AuthEmail: "이메일",
}

func ParseAuthType(code string) (AuthType, error) {
	if value, ok := parseEnumCode(authTypeCodes, code); ok {
		return value, nil
	}
	return AuthUnspecified, fmt.Errorf("unsupported auth type %q", code)
}

func (a AuthType) IsValid() bool               { _, ok := authTypeCodes[a]; return ok }
func (a AuthType) Number() int                 { return int(a) }
func (a AuthType) String() string              { return enumCode(authTypeCodes, a) }
func (a AuthType) Desc() string                { return enumDesc(authTypeDescs, a) }
func (a AuthType) Name() string                { return strings.ToUpper(a.String()) }
func (a AuthType) Value() (driver.Value, error) { return enumValue(authTypeCodes, a) }

func (a *AuthType) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*a = AuthUnspecified
		return err
	}
	parsed, _ := parseEnumCode(authTypeCodes, code)
	*a = parsed
	return nil
}

// UserStatus is the account lifecycle state.
type UserStatus int

const (
	StatusUnspecified UserStatus = iota
	StatusDraft
	StatusPendingReview
	StatusActive
	StatusSuspended
	StatusWithdrawn
)

var userStatusCodes = map[UserStatus]string{
	StatusDraft:         "draft",
	StatusPendingReview: "pending_review",
	StatusActive:        "active",
	StatusSuspended:     "suspended",
	StatusWithdrawn:     "withdrawn",
}

var userStatusDescs = map[UserStatus]string{
	StatusDraft:         "가입 작성중",
	StatusPendingReview: "심사 대기",
	StatusActive:        "활동중",
	StatusSuspended:     "일시 정지",
	StatusWithdrawn:     "탈퇴",
}

// legacy import feeds arrive with loose status labels
var userStatusAliases = map[string]UserStatus{
	"new":      StatusDraft,
	"pending":  StatusPendingReview,
	"approved": StatusActive,
}

func ParseUserStatus(code string) (UserStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if value, ok := parseEnumCode(userStatusCodes, normalized); ok {
		return value, nil
	}
	if value, ok := userStatusAliases[normalized]; ok {
		return value, nil
	}
	return StatusUnspecified, fmt.Errorf("unsupported user status %q", code)
}

func (s UserStatus) IsValid() bool                { _, ok := userStatusCodes[s]; return ok }
func (s UserStatus) Number() int                  { return int(s) }
func (s UserStatus) String() string               { return enumCode(userStatusCodes, s) }
func (s UserStatus) Desc() string                 { return enumDesc(userStatusDescs, s) }
func (s UserStatus) Name() string                 { return strings.ToUpper(s.String()) }
func (s UserStatus) Value() (driver.Value, error) { return enumValue(userStatusCodes, s) }

func (s *UserStatus) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*s = StatusUnspecified
		return err
	}
	parsed, _ := parseEnumCode(userStatusCodes, code)
	*s = parsed
	return nil
}

// Gender of the member.
type Gender int

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
)

var genderCodes = map[Gender]string{
	GenderMale:   "male",
	GenderFemale: "female",
}

var genderDescs = map[Gender]string{
	GenderMale:   "남성",
	GenderFemale: "여성",
}

var genderKorean = map[string]Gender{
	"남":  GenderMale,
	"남성": GenderMale,
	"남자": GenderMale,
	"여":  GenderFemale,
	"여성": GenderFemale,
	"여자": GenderFemale,
}

func ParseGender(code string) (Gender, error) {
	if value, ok := parseEnumCode(genderCodes, code); ok {
		return value, nil
	}
	return GenderUnspecified, fmt.Errorf("unsupported gender %q", code)
}

// ParseGenderKorean resolves the Korean intake labels, e.g. "남" or "여성".
func ParseGenderKorean(label string) (Gender, bool) {
	value, ok := genderKorean[strings.TrimSpace(label)]
	return value, ok
}

func (g Gender) IsValid() bool                { _, ok := genderCodes[g]; return ok }
func (g Gender) Number() int                  { return int(g) }
func (g Gender) String() string               { return enumCode(genderCodes, g) }
func (g Gender) Desc() string                 { return enumDesc(genderDescs, g) }
func (g Gender) Name() string                 { return strings.ToUpper(g.String()) }
func (g Gender) Value() (driver.Value, error) { return enumValue(genderCodes, g) }

func (g *Gender) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*g = GenderUnspecified
		return err
	}
	parsed, _ := parseEnumCode(genderCodes, code)
	*g = parsed
	return nil
}

// Smoking habit.
type Smoking int

const (
	SmokingUnspecified Smoking = iota
	SmokingNone
	SmokingSmoker
	SmokingOccasionally
)

var smokingCodes = map[Smoking]string{
	SmokingNone:         "non_smoker",
	SmokingSmoker:       "smoker",
	SmokingOccasionally: "occasionally",
}

var smokingDescs = map[Smoking]string{
	SmokingNone:         "비흡연",
	SmokingSmoker:       "흡연",
	SmokingOccasionally: "가끔 흡연",
}

var smokingKorean = map[string]Smoking{
	"비흡연":    SmokingNone,
	"흡연":     SmokingSmoker,
	"가끔 흡연":  SmokingOccasionally,
	"가끔":     SmokingOccasionally,
	"사회적 흡연": SmokingOccasionally,
}

func ParseSmoking(code string) (Smoking, error) {
	if value, ok := parseEnumCode(smokingCodes, code); ok {
		return value, nil
	}
	return SmokingUnspecified, fmt.Errorf("unsupported smoking status %q", code)
}

func ParseSmokingKorean(label string) (Smoking, bool) {
	value, ok := smokingKorean[strings.TrimSpace(label)]
	return value, ok
}

func (s Smoking) IsValid() bool                { _, ok := smokingCodes[s]; return ok }
func (s Smoking) Number() int                  { return int(s) }
func (s Smoking) String() string               { return enumCode(smokingCodes, s) }
func (s Smoking) Desc() string                 { return enumDesc(smokingDescs, s) }
func (s Smoking) Name() string                 { return strings.ToUpper(s.String()) }
func (s Smoking) Value() (driver.Value, error) { return enumValue(smokingCodes, s) }

func (s *Smoking) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*s = SmokingUnspecified
		return err
	}
	parsed, _ := parseEnumCode(smokingCodes, code)
	*s = parsed
	return nil
}

// Religion affiliation.
type Religion int

const (
	ReligionUnspecified Religion = iota
	ReligionNone
	ReligionChristian
	ReligionBuddhist
	ReligionCatholic
	ReligionOther
)

var religionCodes = map[Religion]string{
	ReligionNone:      "none",
	ReligionChristian: "christian",
	ReligionBuddhist:  "buddhist",
	ReligionCatholic:  "catholic",
	ReligionOther:     "other",
}

var religionDescs = map[Religion]string{
	ReligionNone:      "무교",
	ReligionChristian: "기독교",
	ReligionBuddhist:  "불교",
	ReligionCatholic:  "천주교",
	ReligionOther:     "기타",
}

var religionKorean = map[string]Religion{
	"무교":  ReligionNone,
	"없음":  ReligionNone,
	"기독교": ReligionChristian,
	"개신교": ReligionChristian,
	"불교":  ReligionBuddhist,
	"천주교": ReligionCatholic,
	"가톨릭": ReligionCatholic,
	"기타":  ReligionOther,
}

func ParseReligion(code string) (Religion, error) {
	if value, ok := parseEnumCode(religionCodes, code); ok {
		return value, nil
	}
	return ReligionUnspecified, fmt.Errorf("unsupported religion %q", code)
}

func ParseReligionKorean(label string) (Religion, bool) {
	value, ok := religionKorean[strings.TrimSpace(label)]
	return value, ok
}

func (r Religion) IsValid() bool                { _, ok := religionCodes[r]; return ok }
func (r Religion) Number() int                  { return int(r) }
func (r Religion) String() string               { return enumCode(religionCodes, r) }
func (r Religion) Desc() string                 { return enumDesc(religionDescs, r) }
func (r Religion) Name() string                 { return strings.ToUpper(r.String()) }
func (r Religion) Value() (driver.Value, error) { return enumValue(religionCodes, r) }

func (r *Religion) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*r = ReligionUnspecified
		return err
	}
	parsed, _ := parseEnumCode(religionCodes, code)
	*r = parsed
	return nil
}

// Tattoo visibility.
type Tattoo int

const (
	TattooUnspecified Tattoo = iota
	TattooNone
	TattooSmall
	TattooVisible
)

var tattooCodes = map[Tattoo]string{
	TattooNone:    "none",
	TattooSmall:   "small",
	TattooVisible: "visible",
}

var tattooDescs = map[Tattoo]string{
	TattooNone:    "문신 없음",
	TattooSmall:   "작은 문신 있음",
	TattooVisible: "눈에 띄는 문신",
}

var tattooKorean = map[string]Tattoo{
	"문신 없음":      TattooNone,
	"없음":         TattooNone,
	"작은 문신 있음":   TattooSmall,
	"작은 문신":      TattooSmall,
	"문신 있음":      TattooSmall,
	"눈에 띄는 문신":   TattooVisible,
	"눈에 띄는 문신 있음": TattooVisible,
}

func ParseTattoo(code string) (Tattoo, error) {
	if value, ok := parseEnumCode(tattooCodes, code); ok {
		return value, nil
	}
	return TattooUnspecified, fmt.Errorf("unsupported tattoo status %q", code)
}

// ParseTattooKorean resolves intake labels. "비공개" is absent on purpose and
// resolves to (TattooUnspecified, false).
func ParseTattooKorean(label string) (Tattoo, bool) {
	value, ok := tattooKorean[strings.TrimSpace(label)]
	return value, ok
}

func (t Tattoo) IsValid() bool                { _, ok := tattooCodes[t]; return ok }
func (t Tattoo) Number() int                  { return int(t) }
func (t Tattoo) String() string               { return enumCode(tattooCodes, t) }
func (t Tattoo) Desc() string                 { return enumDesc(tattooDescs, t) }
func (t Tattoo) Name() string                 { return strings.ToUpper(t.String()) }
func (t Tattoo) Value() (driver.Value, error) { return enumValue(tattooCodes, t) }

func (t *Tattoo) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*t = TattooUnspecified
		return err
	}
	parsed, _ := parseEnumCode(tattooCodes, code)
	*t = parsed
	return nil
}

// Education is the highest education level.
type Education int

const (
	EducationUnspecified Education = iota
	EducationHighSchool
	EducationAssociateEnrolled
	EducationAssociateGraduated
	EducationBachelorEnrolled
	EducationBachelorGraduated
	EducationMasterEnrolled
	EducationMasterGraduated
	EducationDoctorateEnrolled
	EducationDoctorateGraduated
	EducationForeign
	EducationOther
)

var educationCodes = map[Education]string{
	EducationHighSchool:         "high_school",
	EducationAssociateEnrolled:  "associate_enrolled",
	EducationAssociateGraduated: "associate_graduated",
	EducationBachelorEnrolled:   "bachelor_enrolled",
	EducationBachelorGraduated:  "bachelor_graduated",
	EducationMasterEnrolled:     "master_enrolled",
	EducationMasterGraduated:    "master_graduated",
	EducationDoctorateEnrolled:  "doctorate_enrolled",
	EducationDoctorateGraduated: "doctorate_graduated",
	EducationForeign:            "foreign",
	EducationOther:              "other",
}

var educationDescs = map[Education]string{
	EducationHighSchool:         "고졸",
	EducationAssociateEnrolled:  "전문대 재학",
	EducationAssociateGraduated: "전문대 졸업",
	EducationBachelorEnrolled:   "학사 재학",
	EducationBachelorGraduated:  "학사 졸업",
	EducationMasterEnrolled:     "석사 재학",
	EducationMasterGraduated:    "석사 졸업",
	EducationDoctorateEnrolled:  "박사 재학",
	EducationDoctorateGraduated: "박사 졸업",
	EducationForeign:            "해외 대학 재학/졸업",
	EducationOther:              "기타",
}

var educationKorean = map[string]Education{
	"고졸":               EducationHighSchool,
	"고등학교 졸업":          EducationHighSchool,
	"고등학교 졸업(검정고시 포함)": EducationHighSchool,
	"전문대 재학":           EducationAssociateEnrolled,
	"전문대 졸업":           EducationAssociateGraduated,
	"전문학사 졸업":          EducationAssociateGraduated,
	"학사 재학":            EducationBachelorEnrolled,
	"대학 재학":            EducationBachelorEnrolled,
	"대학교 재학(4년)":       EducationBachelorEnrolled,
	"학사 졸업":            EducationBachelorGraduated,
	"대학 졸업":            EducationBachelorGraduated,
	"대졸":               EducationBachelorGraduated,
	"석사 재학":            EducationMasterEnrolled,
	"석사 과정 재학":         EducationMasterEnrolled,
	"석사 졸업":            EducationMasterGraduated,
	"석사":               EducationMasterGraduated,
	"박사 재학":            EducationDoctorateEnrolled,
	"박사 과정 재학":         EducationDoctorateEnrolled,
	"박사 졸업":            EducationDoctorateGraduated,
	"박사":               EducationDoctorateGraduated,
	"해외 대학 재학/졸업":      EducationForeign,
	"기타":               EducationOther,
}

func ParseEducation(code string) (Education, error) {
	if value, ok := parseEnumCode(educationCodes, code); ok {
		return value, nil
	}
	return EducationUnspecified, fmt.Errorf("unsupported education level %q", code)
}

func ParseEducationKorean(label string) (Education, bool) {
	value, ok := educationKorean[strings.TrimSpace(label)]
	return value, ok
}

func (e Education) IsValid() bool                { _, ok := educationCodes[e]; return ok }
func (e Education) Number() int                  { return int(e) }
func (e Education) String() string               { return enumCode(educationCodes, e) }
func (e Education) Desc() string                 { return enumDesc(educationDescs, e) }
func (e Education) Name() string                 { return strings.ToUpper(e.String()) }
func (e Education) Value() (driver.Value, error) { return enumValue(educationCodes, e) }

func (e *Education) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*e = EducationUnspecified
		return err
	}
	parsed, _ := parseEnumCode(educationCodes, code)
	*e = parsed
	return nil
}

// CarOwnership status.
type CarOwnership int

const (
	CarUnspecified CarOwnership = iota
	CarYes
	CarNo
	CarPlanning
)

var carOwnershipCodes = map[CarOwnership]string{
	CarYes:      "yes",
	CarNo:       "no",
	CarPlanning: "planning",
}

var carOwnershipDescs = map[CarOwnership]string{
	CarYes:      "있음",
	CarNo:       "없음",
	CarPlanning: "구입 계획 있음",
}

var carOwnershipKorean = map[string]CarOwnership{
	"있음":       CarYes,
	"있어요":      CarYes,
	"없음":       CarNo,
	"없어요":      CarNo,
	"구입 계획 있음": CarPlanning,
}

func ParseCarOwnership(code string) (CarOwnership, error) {
	if value, ok := parseEnumCode(carOwnershipCodes, code); ok {
		return value, nil
	}
	return CarUnspecified, fmt.Errorf("unsupported car ownership %q", code)
}

func ParseCarOwnershipKorean(label string) (CarOwnership, bool) {
	value, ok := carOwnershipKorean[strings.TrimSpace(label)]
	return value, ok
}

func (c CarOwnership) IsValid() bool                { _, ok := carOwnershipCodes[c]; return ok }
func (c CarOwnership) Number() int                  { return int(c) }
func (c CarOwnership) String() string               { return enumCode(carOwnershipCodes, c) }
func (c CarOwnership) Desc() string                 { return enumDesc(carOwnershipDescs, c) }
func (c CarOwnership) Name() string                 { return strings.ToUpper(c.String()) }
func (c CarOwnership) Value() (driver.Value, error) { return enumValue(carOwnershipCodes, c) }

func (c *CarOwnership) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*c = CarUnspecified
		return err
	}
	parsed, _ := parseEnumCode(carOwnershipCodes, code)
	*c = parsed
	return nil
}

// DinkPreference is the double-income-no-kids preference.
type DinkPreference int

const (
	DinkUnspecified DinkPreference = iota
	DinkYes
	DinkNo
	DinkUndecided
)

var dinkCodes = map[DinkPreference]string{
	DinkYes:       "yes",
	DinkNo:        "no",
	DinkUndecided: "undecided",
}

var dinkDescs = map[DinkPreference]string{
	DinkYes:       "딩크를 원합니다",
	DinkNo:        "딩크를 원하지 않습니다",
	DinkUndecided: "아직 잘 모르겠어요",
}

var dinkKorean = map[string]DinkPreference{
	"딩크를 원합니다":     DinkYes,
	"딩크 원함":        DinkYes,
	"딩크를 원하지 않습니다": DinkNo,
	"딩크 원하지 않음":    DinkNo,
	"아직 잘 모르겠어요":   DinkUndecided,
	"딩크를 고려 중입니다":  DinkUndecided,
	"미정":           DinkUndecided,
}

func ParseDinkPreference(code string) (DinkPreference, error) {
	if value, ok := parseEnumCode(dinkCodes, code); ok {
		return value, nil
	}
	return DinkUnspecified, fmt.Errorf("unsupported dink preference %q", code)
}

func ParseDinkPreferenceKorean(label string) (DinkPreference, bool) {
	value, ok := dinkKorean[strings.TrimSpace(label)]
	return value, ok
}

func (d DinkPreference) IsValid() bool                { _, ok := dinkCodes[d]; return ok }
func (d DinkPreference) Number() int                  { return int(d) }
func (d DinkPreference) String() string               { return enumCode(dinkCodes, d) }
func (d DinkPreference) Desc() string                 { return enumDesc(dinkDescs, d) }
func (d DinkPreference) Name() string                 { return strings.ToUpper(d.String()) }
func (d DinkPreference) Value() (driver.Value, error) { return enumValue(dinkCodes, d) }

func (d *DinkPreference) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*d = DinkUnspecified
		return err
	}
	parsed, _ := parseEnumCode(dinkCodes, code)
	*d = parsed
	return nil
}

// DivorceStatus is the marriage history.
type DivorceStatus int

const (
	DivorceUnspecified DivorceStatus = iota
	DivorceNeverMarried
	DivorceDivorced
	DivorceDivorcedWithKids
)

var divorceCodes = map[DivorceStatus]string{
	DivorceNeverMarried:     "never_married",
	DivorceDivorced:         "divorced",
	DivorceDivorcedWithKids: "divorced_with_kids",
}

var divorceDescs = map[DivorceStatus]string{
	DivorceNeverMarried:     "돌싱이 아닙니다",
	DivorceDivorced:         "돌싱입니다",
	DivorceDivorcedWithKids: "자녀있는 돌싱",
}

var divorceKorean = map[string]DivorceStatus{
	"돌싱이 아닙니다":    DivorceNeverMarried,
	"돌싱 아님":       DivorceNeverMarried,
	"돌싱입니다":       DivorceDivorced,
	"돌싱":          DivorceDivorced,
	"돌싱입니다(자녀x)":  DivorceDivorced,
	"돌싱입니다(자녀o)":  DivorceDivorcedWithKids,
	"자녀있는 돌싱":     DivorceDivorcedWithKids,
	"자녀 있는 돌싱":    DivorceDivorcedWithKids,
}

func ParseDivorceStatus(code string) (DivorceStatus, error) {
	if value, ok := parseEnumCode(divorceCodes, code); ok {
		return value, nil
	}
	return DivorceUnspecified, fmt.Errorf("unsupported divorce status %q", code)
}

func ParseDivorceStatusKorean(label string) (DivorceStatus, bool) {
	value, ok := divorceKorean[strings.TrimSpace(label)]
	return value, ok
}

func (d DivorceStatus) IsValid() bool                { _, ok := divorceCodes[d]; return ok }
func (d DivorceStatus) Number() int                  { return int(d) }
func (d DivorceStatus) String() string               { return enumCode(divorceCodes, d) }
func (d DivorceStatus) Desc() string                 { return enumDesc(divorceDescs, d) }
func (d DivorceStatus) Name() string                 { return strings.ToUpper(d.String()) }
func (d DivorceStatus) Value() (driver.Value, error) { return enumValue(divorceCodes, d) }

func (d *DivorceStatus) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*d = DivorceUnspecified
		return err
	}
	parsed, _ := parseEnumCode(divorceCodes, code)
	*d = parsed
	return nil
}

// LongDistance is the long-distance relationship preference.
type LongDistance int

const (
	LongDistanceUnspecified LongDistance = iota
	LongDistanceImpossible
	LongDistanceDepends
	LongDistancePossible
)

var longDistanceCodes = map[LongDistance]string{
	LongDistanceImpossible: "impossible",
	LongDistanceDepends:    "depends",
	LongDistancePossible:   "possible",
}

var longDistanceDescs = map[LongDistance]string{
	LongDistanceImpossible: "불가능",
	LongDistanceDepends:    "상황에 따라",
	LongDistancePossible:   "가능",
}

var longDistanceKorean = map[string]LongDistance{
	"불가능":    LongDistanceImpossible,
	"상황에 따라": LongDistanceDepends,
	"가능":     LongDistancePossible,
}

func ParseLongDistance(code string) (LongDistance, error) {
	if value, ok := parseEnumCode(longDistanceCodes, code); ok {
		return value, nil
	}
	return LongDistanceUnspecified, fmt.Errorf("unsupported long distance preference %q", code)
}

func ParseLongDistanceKorean(label string) (LongDistance, bool) {
	value, ok := longDistanceKorean[strings.TrimSpace(label)]
	return value, ok
}

func (l LongDistance) IsValid() bool                { _, ok := longDistanceCodes[l]; return ok }
func (l LongDistance) Number() int                  { return int(l) }
func (l LongDistance) String() string               { return enumCode(longDistanceCodes, l) }
func (l LongDistance) Desc() string                 { return enumDesc(longDistanceDescs, l) }
func (l LongDistance) Name() string                 { return strings.ToUpper(l.String()) }
func (l LongDistance) Value() (driver.Value, error) { return enumValue(longDistanceCodes, l) }

func (l *LongDistance) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*l = LongDistanceUnspecified
		return err
	}
	parsed, _ := parseEnumCode(longDistanceCodes, code)
	*l = parsed
	return nil
}

// SalaryRange is the salary band, tier 1 (lowest) through 5 (highest).
// Stored as the band digit.
type SalaryRange int

const (
	SalaryTier1 SalaryRange = iota + 1
	SalaryTier2
	SalaryTier3
	SalaryTier4
	SalaryTier5
)

var salaryRangeCodes = map[SalaryRange]string{
	SalaryTier1: "1",
	SalaryTier2: "2",
	SalaryTier3: "3",
	SalaryTier4: "4",
	SalaryTier5: "5",
}

var salaryRangeDescs = map[SalaryRange]string{
	SalaryTier1: "1구간",
	SalaryTier2: "2구간",
	SalaryTier3: "3구간",
	SalaryTier4: "4구간",
	SalaryTier5: "5구간",
}

func ParseSalaryRange(code string) (SalaryRange, error) {
	if value, ok := parseEnumCode(salaryRangeCodes, code); ok {
		return value, nil
	}
	return 0, fmt.Errorf("unsupported salary range %q", code)
}

func (s SalaryRange) IsValid() bool  { _, ok := salaryRangeCodes[s]; return ok }
func (s SalaryRange) Number() int    { return int(s) }
func (s SalaryRange) String() string { return enumCode(salaryRangeCodes, s) }
func (s SalaryRange) Desc() string   { return enumDesc(salaryRangeDescs, s) }

func (s SalaryRange) Name() string {
	if !s.IsValid() {
		return types.IllegalName
	}
	return fmt.Sprintf("TIER_%d", int(s))
}

func (s SalaryRange) Value() (driver.Value, error) { return enumValue(salaryRangeCodes, s) }

func (s *SalaryRange) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*s = 0
		return err
	}
	parsed, _ := parseEnumCode(salaryRangeCodes, code)
	*s = parsed
	return nil
}

// DocumentType classifies uploaded identity documents.
type DocumentType int

const (
	DocumentUnspecified DocumentType = iota
	DocumentIDCard
	DocumentEmploymentProof
)

var documentTypeCodes = map[DocumentType]string{
	DocumentIDCard:          "id_card",
	DocumentEmploymentProof: "employment_proof",
}

var documentTypeDescs = map[DocumentType]string{
	DocumentIDCard:          "신분증",
	DocumentEmploymentProof: "재직 증명",
}

// camelCase variants arrive from legacy uploads
var documentTypeAliases = map[string]DocumentType{
	"idCard":          DocumentIDCard,
	"employmentProof": DocumentEmploymentProof,
}

func ParseDocumentType(code string) (DocumentType, error) {
	if value, ok := parseEnumCode(documentTypeCodes, code); ok {
		return value, nil
	}
	if value, ok := documentTypeAliases[code]; ok {
		return value, nil
	}
	return DocumentUnspecified, fmt.Errorf("unsupported document type %q", code)
}

func (d DocumentType) IsValid() bool                { _, ok := documentTypeCodes[d]; return ok }
func (d DocumentType) Number() int                  { return int(d) }
func (d DocumentType) String() string               { return enumCode(documentTypeCodes, d) }
func (d DocumentType) Desc() string                 { return enumDesc(documentTypeDescs, d) }
func (d DocumentType) Name() string                 { return strings.ToUpper(d.String()) }
func (d DocumentType) Value() (driver.Value, error) { return enumValue(documentTypeCodes, d) }

func (d *DocumentType) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*d = DocumentUnspecified
		return err
	}
	parsed, _ := parseEnumCode(documentTypeCodes, code)
	*d = parsed
	return nil
}

// PhotoType classifies profile photos.
type PhotoType int

const (
	PhotoUnspecified PhotoType = iota
	PhotoFace
	PhotoFull
)

var photoTypeCodes = map[PhotoType]string{
	PhotoFace: "face",
	PhotoFull: "full",
}

var photoTypeDescs = map[PhotoType]string{
	PhotoFace: "얼굴 사진",
	PhotoFull: "전신 사진",
}

func ParsePhotoType(code string) (PhotoType, error) {
	if value, ok := parseEnumCode(photoTypeCodes, strings.ToLower(code)); ok {
		return value, nil
	}
	return PhotoUnspecified, fmt.Errorf("unsupported photo type %q", code)
}

func (p PhotoType) IsValid() bool                { _, ok := photoTypeCodes[p]; return ok }
func (p PhotoType) Number() int                  { return int(p) }
func (p PhotoType) String() string               { return enumCode(photoTypeCodes, p) }
func (p PhotoType) Desc() string                 { return enumDesc(photoTypeDescs, p) }
func (p PhotoType) Name() string                 { return strings.ToUpper(p.String()) }
func (p PhotoType) Value() (driver.Value, error) { return enumValue(photoTypeCodes, p) }

func (p *PhotoType) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*p = PhotoUnspecified
		return err
	}
	parsed, _ := parseEnumCode(photoTypeCodes, code)
	*p = parsed
	return nil
}

// VerificationStatus is the review state of an uploaded document.
type VerificationStatus int

const (
	VerificationUnspecified VerificationStatus = iota
	VerificationPending
	VerificationApproved
	VerificationRejected
)

var verificationStatusCodes = map[VerificationStatus]string{
	VerificationPending:  "pending",
	VerificationApproved: "approved",
	VerificationRejected: "rejected",
}

var verificationStatusDescs = map[VerificationStatus]string{
	VerificationPending:  "심사중",
	VerificationApproved: "승인",
	VerificationRejected: "반려",
}

func ParseVerificationStatus(code string) (VerificationStatus, error) {
	if value, ok := parseEnumCode(verificationStatusCodes, code); ok {
		return value, nil
	}
	return VerificationUnspecified, fmt.Errorf("unsupported verification status %q", code)
}

func (v VerificationStatus) IsValid() bool                { _, ok := verificationStatusCodes[v]; return ok }
func (v VerificationStatus) Number() int                  { return int(v) }
func (v VerificationStatus) String() string               { return enumCode(verificationStatusCodes, v) }
func (v VerificationStatus) Desc() string                 { return enumDesc(verificationStatusDescs, v) }
func (v VerificationStatus) Name() string                 { return strings.ToUpper(v.String()) }
func (v VerificationStatus) Value() (driver.Value, error) { return enumValue(verificationStatusCodes, v) }

func (v *VerificationStatus) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*v = VerificationUnspecified
		return err
	}
	parsed, _ := parseEnumCode(verificationStatusCodes, code)
	*v = parsed
	return nil
}

// MatchCategory labels how a match suggestion was produced.
type MatchCategory int

const (
	MatchUnspecified MatchCategory = iota
	MatchIntro
	MatchExtra
)

var matchCategoryCodes = map[MatchCategory]string{
	MatchIntro: "intro",
	MatchExtra: "extra",
}

var matchCategoryDescs = map[MatchCategory]string{
	MatchIntro: "기본 소개",
	MatchExtra: "추가 소개",
}

func ParseMatchCategory(code string) (MatchCategory, error) {
	if value, ok := parseEnumCode(matchCategoryCodes, strings.ToLower(code)); ok {
		return value, nil
	}
	return MatchUnspecified, fmt.Errorf("unsupported match category %q", code)
}

func (m MatchCategory) IsValid() bool                { _, ok := matchCategoryCodes[m]; return ok }
func (m MatchCategory) Number() int                  { return int(m) }
func (m MatchCategory) String() string               { return enumCode(matchCategoryCodes, m) }
func (m MatchCategory) Desc() string                 { return enumDesc(matchCategoryDescs, m) }
func (m MatchCategory) Name() string                 { return strings.ToUpper(m.String()) }
func (m MatchCategory) Value() (driver.Value, error) { return enumValue(matchCategoryCodes, m) }

func (m *MatchCategory) Scan(value interface{}) error {
	code, present, err := scanEnumSource(value)
	if err != nil || !present {
		*m = MatchUnspecified
		return err
	}
	parsed, _ := parseEnumCode(matchCategoryCodes, code)
	*m = parsed
	return nil
}

var (
	_ types.BaseEnum = AuthPhone
	_ types.BaseEnum = StatusActive
	_ types.BaseEnum = GenderFemale
	_ types.BaseEnum = SmokingNone
	_ types.BaseEnum = ReligionNone
	_ types.BaseEnum = TattooNone
	_ types.BaseEnum = EducationBachelorGraduated
	_ types.BaseEnum = CarYes
	_ types.BaseEnum = DinkUndecided
	_ types.BaseEnum = DivorceNeverMarried
	_ types.BaseEnum = LongDistancePossible
	_ types.BaseEnum = SalaryTier3
	_ types.BaseEnum = DocumentIDCard
	_ types.BaseEnum = PhotoFace
	_ types.BaseEnum = VerificationPending
	_ types.BaseEnum = MatchIntro
)
